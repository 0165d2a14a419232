package usecases_port

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type UserUseCase interface {
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.User], error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, in domain.UserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	Login(ctx context.Context, email, password string) (*domain.User, error)
}
