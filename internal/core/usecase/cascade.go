package usecase

import (
	"context"
	"fmt"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

// purgeProperty removes a property together with the contacts it owns and
// every join row it takes part in. Must run inside a transaction.
func purgeProperty(
	ctx context.Context,
	properties port.PropertyRepositoryPort,
	contacts port.ContactRepositoryPort,
	links port.AssociationRepositoryPort,
	id int64,
) error {
	if err := contacts.DeleteByProperty(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contacts of property %d: %w", id, err)
	}
	if err := links.DetachProperty(ctx, id); err != nil {
		return fmt.Errorf("failed to detach property %d: %w", id, err)
	}
	return properties.Delete(ctx, id)
}
