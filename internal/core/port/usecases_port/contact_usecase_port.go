package usecases_port

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type ContactUseCase interface {
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Contact], error)
	Get(ctx context.Context, id int64) (*domain.Contact, error)
	Create(ctx context.Context, in domain.ContactInput) (*domain.Contact, error)
	AddToProperty(ctx context.Context, propertyID int64, in domain.ContactInput) (*domain.Contact, error)
	Update(ctx context.Context, id int64, in domain.ContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, id int64) error
	ByUser(ctx context.Context, userID int64) ([]domain.Contact, error)
	ByProperty(ctx context.Context, propertyID int64) ([]domain.Contact, error)
	ByConsultant(ctx context.Context, consultantID int64) ([]domain.Contact, error)
}
