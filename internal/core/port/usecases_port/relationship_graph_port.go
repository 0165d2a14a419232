package usecases_port

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

// RelationshipGraphUseCase - add/remove/list members of the association families.
type RelationshipGraphUseCase interface {
	AddAssigned(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error)
	RemoveAssigned(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error)
	AddHistorical(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error)
	RemoveHistorical(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error)
	AddCommission(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error)
	RemoveCommission(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error)

	AddInterested(ctx context.Context, propertyID, userID int64) (*domain.Property, error)
	RemoveInterested(ctx context.Context, propertyID, userID int64) (*domain.Property, error)
	AddTransacted(ctx context.Context, propertyID, userID int64) (*domain.Property, error)
	RemoveTransacted(ctx context.Context, propertyID, userID int64) (*domain.Property, error)
	AddRelated(ctx context.Context, propertyID, otherPropertyID int64) (*domain.Property, error)
	RemoveRelated(ctx context.Context, propertyID, otherPropertyID int64) (*domain.Property, error)

	Link(ctx context.Context, family domain.AssociationFamily, side domain.Side, ownerID, otherID int64) error
	Unlink(ctx context.Context, family domain.AssociationFamily, side domain.Side, ownerID, otherID int64) error

	ConsultantProperties(ctx context.Context, consultantID int64, family domain.AssociationFamily) ([]domain.Property, error)
	UserProperties(ctx context.Context, userID int64, family domain.AssociationFamily) ([]domain.Property, error)
	PropertyConsultants(ctx context.Context, propertyID int64, family domain.AssociationFamily) ([]domain.Consultant, error)
	PropertyUsers(ctx context.Context, propertyID int64, family domain.AssociationFamily) ([]domain.User, error)
	RelatedProperties(ctx context.Context, propertyID int64) ([]domain.Property, error)
}
