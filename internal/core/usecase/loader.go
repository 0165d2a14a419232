package usecase

import (
	"context"
	"fmt"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

// entityLoader reads an entity together with the ids held on its side of
// every association.
type entityLoader struct {
	properties  port.PropertyRepositoryPort
	consultants port.ConsultantRepositoryPort
	users       port.UserRepositoryPort
	contacts    port.ContactRepositoryPort
	links       port.AssociationRepositoryPort
}

func (l *entityLoader) property(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := l.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError(domain.KindProperty, id)
	}

	links := &domain.PropertyLinks{}
	for _, family := range domain.AllFamilies() {
		ids, err := l.links.MembersOf(ctx, family, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s members of property %d: %w", family, id, err)
		}
		links.SetMembers(family, nonNil(ids))
	}

	contacts, err := l.contacts.FindByProperty(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts of property %d: %w", id, err)
	}
	links.ContactIDs = make([]int64, 0, len(contacts))
	for _, c := range contacts {
		links.ContactIDs = append(links.ContactIDs, c.ID)
	}

	p.Links = links
	return p, nil
}

func (l *entityLoader) consultant(ctx context.Context, id int64) (*domain.Consultant, error) {
	c, err := l.consultants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError(domain.KindConsultant, id)
	}

	links := &domain.ConsultantLinks{}
	for _, family := range domain.ConsultantFamilies() {
		ids, err := l.links.PropertiesOf(ctx, family, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s properties of consultant %d: %w", family, id, err)
		}
		switch family {
		case domain.FamilyAssigned:
			links.AssignedPropertyIDs = nonNil(ids)
		case domain.FamilyHistorical:
			links.HistoricalPropertyIDs = nonNil(ids)
		case domain.FamilyCommission:
			links.CommissionPropertyIDs = nonNil(ids)
		}
	}

	c.Links = links
	return c, nil
}

func (l *entityLoader) user(ctx context.Context, id int64) (*domain.User, error) {
	u, err := l.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFoundError(domain.KindUser, id)
	}

	links := &domain.UserLinks{}
	for _, family := range domain.UserFamilies() {
		ids, err := l.links.PropertiesOf(ctx, family, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s properties of user %d: %w", family, id, err)
		}
		switch family {
		case domain.FamilyInterested:
			links.InterestedPropertyIDs = nonNil(ids)
		case domain.FamilyTransacted:
			links.TransactedPropertyIDs = nonNil(ids)
		}
	}

	u.Links = links
	return u, nil
}

// exists resolves an identity of any kind. Zero and negative ids never exist.
func (l *entityLoader) exists(ctx context.Context, kind domain.EntityKind, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	switch kind {
	case domain.KindProperty:
		return l.properties.Exists(ctx, id)
	case domain.KindConsultant:
		return l.consultants.Exists(ctx, id)
	case domain.KindUser:
		return l.users.Exists(ctx, id)
	case domain.KindContact:
		c, err := l.contacts.FindByID(ctx, id)
		return c != nil, err
	}
	return false, fmt.Errorf("unknown entity kind %q", kind)
}

// mustExist returns NotFound when the identity does not resolve.
func (l *entityLoader) mustExist(ctx context.Context, kind domain.EntityKind, id int64) error {
	ok, err := l.exists(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError(kind, id)
	}
	return nil
}

// reference checks an optional foreign reference carried by a payload.
func (l *entityLoader) reference(ctx context.Context, kind domain.EntityKind, id *int64, label string) error {
	if id == nil {
		return nil
	}
	ok, err := l.exists(ctx, kind, *id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewValidationError(label + " not found")
	}
	return nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
