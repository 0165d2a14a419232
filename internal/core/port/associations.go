package port

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

// AssociationRepositoryPort - join rows of the six association families.
//
// A row is (family, property, member). Both directions of an association are
// read from the same row, so there is no second copy to keep in sync. For the
// related family the pair is unordered and stored once.
type AssociationRepositoryPort interface {
	// Add inserts the row; false when it was already present.
	Add(ctx context.Context, family domain.AssociationFamily, propertyID, memberID int64) (bool, error)
	// Remove deletes the row; false when there was nothing to delete.
	Remove(ctx context.Context, family domain.AssociationFamily, propertyID, memberID int64) (bool, error)

	// MembersOf lists the member ids of a property, ascending.
	MembersOf(ctx context.Context, family domain.AssociationFamily, propertyID int64) ([]int64, error)
	// PropertiesOf lists the property ids of a member, ascending.
	PropertiesOf(ctx context.Context, family domain.AssociationFamily, memberID int64) ([]int64, error)
	CountMembers(ctx context.Context, family domain.AssociationFamily, propertyID int64) (int, error)

	// DetachProperty removes every row the property takes part in, on either end.
	DetachProperty(ctx context.Context, propertyID int64) error
	// DetachMember removes every row of the families whose member kind is kind.
	DetachMember(ctx context.Context, kind domain.EntityKind, memberID int64) error
}
