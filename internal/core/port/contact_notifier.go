package port

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

// ContactNotifierPort announces new inquiries to downstream consumers.
type ContactNotifierPort interface {
	NotifyContactCreated(ctx context.Context, contact domain.Contact) error
}
