package usecases_port

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type FindPropertiesUseCase interface {
	Execute(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) (*domain.Page[domain.Property], error)
}
