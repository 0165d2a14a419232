package usecases_port

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type PropertyUseCase interface {
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Property], error)
	Get(ctx context.Context, id int64) (*domain.Property, error)
	OwnedBy(ctx context.Context, userID int64) ([]domain.Property, error)
	Create(ctx context.Context, in domain.PropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id int64, in domain.PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id int64) error
}
