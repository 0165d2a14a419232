package usecase

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

// FindPropertiesUseCase - the property filter engine. Results are ordered by
// ascending id so consecutive pages never overlap on a stable data set.
type FindPropertiesUseCase struct {
	repo        port.PropertyRepositoryPort
	maxPageSize int
}

func NewFindPropertiesUseCase(repo port.PropertyRepositoryPort, maxPageSize int) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{repo: repo, maxPageSize: maxPageSize}
}

func (uc *FindPropertiesUseCase) Execute(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) (*domain.Page[domain.Property], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindProperties",
		"page":     page.Page,
		"size":     page.Size,
	})

	ucLogger.Info("Use case started", nil)

	if err := filter.Validate(); err != nil {
		ucLogger.Warn("Invalid filter", port.Fields{"reason": err.Error()})
		return nil, err
	}
	if err := page.Validate(uc.maxPageSize); err != nil {
		ucLogger.Warn("Invalid page request", port.Fields{"reason": err.Error()})
		return nil, err
	}

	items, total, err := uc.repo.FindWithFilters(ctx, filter, page)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(items), "total": total})
	return domain.NewPage(items, page, total), nil
}
