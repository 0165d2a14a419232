package usecases_port

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type ConsultantUseCase interface {
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Consultant], error)
	Get(ctx context.Context, id int64) (*domain.Consultant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Consultant, error)
	Create(ctx context.Context, in domain.ConsultantInput) (*domain.Consultant, error)
	Update(ctx context.Context, id int64, in domain.ConsultantInput) (*domain.Consultant, error)
	Delete(ctx context.Context, id int64) error
	Users(ctx context.Context, id int64) ([]domain.User, error)
}
