package usecase

import (
	"context"
	"fmt"
	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

type linkOp string

const (
	opAdd    linkOp = "add"
	opRemove linkOp = "remove"
)

// RelationshipGraph keeps the six association families consistent.
//
// Every mutation resolves the owner first (NotFound), then the other side
// (ValidationError), and only then touches the join rows, all in one
// transaction. Adds and removes are idempotent.
type RelationshipGraph struct {
	tx     port.Transactor
	links  port.AssociationRepositoryPort
	loader *entityLoader
}

func NewRelationshipGraph(
	tx port.Transactor,
	properties port.PropertyRepositoryPort,
	consultants port.ConsultantRepositoryPort,
	users port.UserRepositoryPort,
	contacts port.ContactRepositoryPort,
	links port.AssociationRepositoryPort,
) *RelationshipGraph {
	return &RelationshipGraph{
		tx:    tx,
		links: links,
		loader: &entityLoader{
			properties:  properties,
			consultants: consultants,
			users:       users,
			contacts:    contacts,
			links:       links,
		},
	}
}

func (g *RelationshipGraph) AddAssigned(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error) {
	return g.consultantOp(ctx, opAdd, domain.FamilyAssigned, consultantID, propertyID)
}

func (g *RelationshipGraph) RemoveAssigned(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error) {
	return g.consultantOp(ctx, opRemove, domain.FamilyAssigned, consultantID, propertyID)
}

func (g *RelationshipGraph) AddHistorical(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error) {
	return g.consultantOp(ctx, opAdd, domain.FamilyHistorical, consultantID, propertyID)
}

func (g *RelationshipGraph) RemoveHistorical(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error) {
	return g.consultantOp(ctx, opRemove, domain.FamilyHistorical, consultantID, propertyID)
}

func (g *RelationshipGraph) AddCommission(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error) {
	return g.consultantOp(ctx, opAdd, domain.FamilyCommission, consultantID, propertyID)
}

func (g *RelationshipGraph) RemoveCommission(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error) {
	return g.consultantOp(ctx, opRemove, domain.FamilyCommission, consultantID, propertyID)
}

func (g *RelationshipGraph) AddInterested(ctx context.Context, propertyID, userID int64) (*domain.Property, error) {
	return g.propertyOp(ctx, opAdd, domain.FamilyInterested, propertyID, userID)
}

func (g *RelationshipGraph) RemoveInterested(ctx context.Context, propertyID, userID int64) (*domain.Property, error) {
	return g.propertyOp(ctx, opRemove, domain.FamilyInterested, propertyID, userID)
}

func (g *RelationshipGraph) AddTransacted(ctx context.Context, propertyID, userID int64) (*domain.Property, error) {
	return g.propertyOp(ctx, opAdd, domain.FamilyTransacted, propertyID, userID)
}

func (g *RelationshipGraph) RemoveTransacted(ctx context.Context, propertyID, userID int64) (*domain.Property, error) {
	return g.propertyOp(ctx, opRemove, domain.FamilyTransacted, propertyID, userID)
}

// AddRelated links two properties in both directions. Relating a property
// to itself is ignored.
func (g *RelationshipGraph) AddRelated(ctx context.Context, propertyID, otherPropertyID int64) (*domain.Property, error) {
	return g.propertyOp(ctx, opAdd, domain.FamilyRelated, propertyID, otherPropertyID)
}

func (g *RelationshipGraph) RemoveRelated(ctx context.Context, propertyID, otherPropertyID int64) (*domain.Property, error) {
	return g.propertyOp(ctx, opRemove, domain.FamilyRelated, propertyID, otherPropertyID)
}

// Link adds an association of any family seen from either side.
func (g *RelationshipGraph) Link(ctx context.Context, family domain.AssociationFamily, side domain.Side, ownerID, otherID int64) error {
	return g.tx.WithinTx(ctx, func(ctx context.Context) error {
		return g.apply(ctx, opAdd, family, side, ownerID, otherID)
	})
}

// Unlink removes an association of any family seen from either side.
func (g *RelationshipGraph) Unlink(ctx context.Context, family domain.AssociationFamily, side domain.Side, ownerID, otherID int64) error {
	return g.tx.WithinTx(ctx, func(ctx context.Context) error {
		return g.apply(ctx, opRemove, family, side, ownerID, otherID)
	})
}

// ConsultantProperties lists the properties a consultant holds in one family.
func (g *RelationshipGraph) ConsultantProperties(ctx context.Context, consultantID int64, family domain.AssociationFamily) ([]domain.Property, error) {
	if family.MemberKind() != domain.KindConsultant {
		return nil, domain.NewValidationError(fmt.Sprintf("%s is not a consultant association", family))
	}
	return g.memberProperties(ctx, domain.KindConsultant, consultantID, family)
}

// UserProperties lists the properties a user holds in one family.
func (g *RelationshipGraph) UserProperties(ctx context.Context, userID int64, family domain.AssociationFamily) ([]domain.Property, error) {
	if family.MemberKind() != domain.KindUser {
		return nil, domain.NewValidationError(fmt.Sprintf("%s is not a user association", family))
	}
	return g.memberProperties(ctx, domain.KindUser, userID, family)
}

// PropertyConsultants lists the consultants of a property in one family.
func (g *RelationshipGraph) PropertyConsultants(ctx context.Context, propertyID int64, family domain.AssociationFamily) ([]domain.Consultant, error) {
	if family.MemberKind() != domain.KindConsultant {
		return nil, domain.NewValidationError(fmt.Sprintf("%s is not a consultant association", family))
	}
	ids, err := g.propertyMembers(ctx, propertyID, family)
	if err != nil {
		return nil, err
	}
	return g.loader.consultants.FindByIDs(ctx, ids)
}

// PropertyUsers lists the users of a property in one family.
func (g *RelationshipGraph) PropertyUsers(ctx context.Context, propertyID int64, family domain.AssociationFamily) ([]domain.User, error) {
	if family.MemberKind() != domain.KindUser {
		return nil, domain.NewValidationError(fmt.Sprintf("%s is not a user association", family))
	}
	ids, err := g.propertyMembers(ctx, propertyID, family)
	if err != nil {
		return nil, err
	}
	return g.loader.users.FindByIDs(ctx, ids)
}

// RelatedProperties lists the properties related to a property.
func (g *RelationshipGraph) RelatedProperties(ctx context.Context, propertyID int64) ([]domain.Property, error) {
	ids, err := g.propertyMembers(ctx, propertyID, domain.FamilyRelated)
	if err != nil {
		return nil, err
	}
	return g.loader.properties.FindByIDs(ctx, ids)
}

func (g *RelationshipGraph) consultantOp(ctx context.Context, op linkOp, family domain.AssociationFamily, consultantID, propertyID int64) (*domain.Consultant, error) {
	var consultant *domain.Consultant
	err := g.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := g.apply(ctx, op, family, domain.SideMember, consultantID, propertyID); err != nil {
			return err
		}
		var err error
		consultant, err = g.loader.consultant(ctx, consultantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return consultant, nil
}

func (g *RelationshipGraph) propertyOp(ctx context.Context, op linkOp, family domain.AssociationFamily, propertyID, memberID int64) (*domain.Property, error) {
	var property *domain.Property
	err := g.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := g.apply(ctx, op, family, domain.SideProperty, propertyID, memberID); err != nil {
			return err
		}
		var err error
		property, err = g.loader.property(ctx, propertyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return property, nil
}

// apply must run inside a transaction.
func (g *RelationshipGraph) apply(ctx context.Context, op linkOp, family domain.AssociationFamily, side domain.Side, ownerID, otherID int64) error {
	ownerKind, otherKind := family.Ends(side)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "RelationshipGraph",
		"operation":  string(op),
		"family":     string(family),
		"owner_kind": string(ownerKind),
		"owner_id":   ownerID,
		"other_id":   otherID,
	})
	ucLogger.Debug("Association change started", nil)

	if ownerKind == "" {
		return domain.NewValidationError(fmt.Sprintf("unknown association %q", family))
	}

	if err := g.loader.mustExist(ctx, ownerKind, ownerID); err != nil {
		return err
	}

	ok, err := g.loader.exists(ctx, otherKind, otherID)
	if err != nil {
		ucLogger.Error("Failed to resolve association target", err, nil)
		return err
	}
	if !ok {
		return domain.NewValidationError(otherKind.Title() + " invalid or not found")
	}

	if family.SelfReferential() && ownerID == otherID {
		ucLogger.Debug("Self relation ignored", nil)
		return nil
	}

	propertyID, memberID := ownerID, otherID
	if side == domain.SideMember {
		propertyID, memberID = otherID, ownerID
	}

	var changed bool
	switch op {
	case opAdd:
		if err := g.checkCapacity(ctx, family, propertyID, memberID); err != nil {
			return err
		}
		changed, err = g.links.Add(ctx, family, propertyID, memberID)
	case opRemove:
		changed, err = g.links.Remove(ctx, family, propertyID, memberID)
	}
	if err != nil {
		ucLogger.Error("Association store returned an error", err, nil)
		return err
	}

	if changed {
		ucLogger.Info("Association changed", nil)
	} else {
		ucLogger.Debug("Association already in requested state", nil)
	}
	return nil
}

func (g *RelationshipGraph) checkCapacity(ctx context.Context, family domain.AssociationFamily, propertyID, memberID int64) error {
	if family != domain.FamilyInterested {
		return nil
	}
	count, err := g.links.CountMembers(ctx, family, propertyID)
	if err != nil {
		return err
	}
	if count < domain.MaxInterestedPerProperty {
		return nil
	}
	members, err := g.links.MembersOf(ctx, family, propertyID)
	if err != nil {
		return err
	}
	for _, id := range members {
		if id == memberID {
			return nil
		}
	}
	return domain.NewValidationError(fmt.Sprintf("a property can have at most %d interested users", domain.MaxInterestedPerProperty))
}

func (g *RelationshipGraph) memberProperties(ctx context.Context, kind domain.EntityKind, memberID int64, family domain.AssociationFamily) ([]domain.Property, error) {
	if err := g.loader.mustExist(ctx, kind, memberID); err != nil {
		return nil, err
	}
	ids, err := g.links.PropertiesOf(ctx, family, memberID)
	if err != nil {
		return nil, err
	}
	return g.loader.properties.FindByIDs(ctx, ids)
}

func (g *RelationshipGraph) propertyMembers(ctx context.Context, propertyID int64, family domain.AssociationFamily) ([]int64, error) {
	if err := g.loader.mustExist(ctx, domain.KindProperty, propertyID); err != nil {
		return nil, err
	}
	return g.links.MembersOf(ctx, family, propertyID)
}
