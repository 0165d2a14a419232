package usecase

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

type ConsultantService struct {
	tx          port.Transactor
	consultants port.ConsultantRepositoryPort
	users       port.UserRepositoryPort
	contacts    port.ContactRepositoryPort
	links       port.AssociationRepositoryPort
	loader      *entityLoader
	maxPageSize int
}

func NewConsultantService(
	tx port.Transactor,
	properties port.PropertyRepositoryPort,
	consultants port.ConsultantRepositoryPort,
	users port.UserRepositoryPort,
	contacts port.ContactRepositoryPort,
	links port.AssociationRepositoryPort,
	maxPageSize int,
) *ConsultantService {
	return &ConsultantService{
		tx:          tx,
		consultants: consultants,
		users:       users,
		contacts:    contacts,
		links:       links,
		loader: &entityLoader{
			properties:  properties,
			consultants: consultants,
			users:       users,
			contacts:    contacts,
			links:       links,
		},
		maxPageSize: maxPageSize,
	}
}

// List returns one page of consultants ordered by id, without associations.
func (s *ConsultantService) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Consultant], error) {
	if err := page.Validate(s.maxPageSize); err != nil {
		return nil, err
	}
	items, total, err := s.consultants.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, page, total), nil
}

func (s *ConsultantService) Get(ctx context.Context, id int64) (*domain.Consultant, error) {
	return s.loader.consultant(ctx, id)
}

func (s *ConsultantService) GetByEmail(ctx context.Context, email string) (*domain.Consultant, error) {
	c, err := s.consultants.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundByField(domain.KindConsultant, "email", email)
	}
	return s.loader.consultant(ctx, c.ID)
}

func (s *ConsultantService) Create(ctx context.Context, in domain.ConsultantInput) (*domain.Consultant, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "CreateConsultant", "email": in.Email})
	ucLogger.Info("Use case started", nil)

	if err := in.Validate(); err != nil {
		ucLogger.Warn("Validation failed", port.Fields{"reason": err.Error()})
		return nil, err
	}

	var created *domain.Consultant
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkEmail(ctx, in.Email, 0); err != nil {
			return err
		}
		c := &domain.Consultant{}
		c.Apply(in)
		if err := s.consultants.Create(ctx, c); err != nil {
			return err
		}
		var err error
		created, err = s.loader.consultant(ctx, c.ID)
		return err
	})
	if err != nil {
		ucLogger.Error("Failed to create consultant", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"consultant_id": created.ID})
	return created, nil
}

// Update replaces every mutable field of the consultant.
func (s *ConsultantService) Update(ctx context.Context, id int64, in domain.ConsultantInput) (*domain.Consultant, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateConsultant", "consultant_id": id})
	ucLogger.Info("Use case started", nil)

	var updated *domain.Consultant
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.consultants.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewNotFoundError(domain.KindConsultant, id)
		}
		if err := in.Validate(); err != nil {
			return err
		}
		if err := s.checkEmail(ctx, in.Email, id); err != nil {
			return err
		}
		c.Apply(in)
		if err := s.consultants.Update(ctx, c); err != nil {
			return err
		}
		updated, err = s.loader.consultant(ctx, id)
		return err
	})
	if err != nil {
		ucLogger.Error("Failed to update consultant", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}

// Delete detaches the consultant from every association and from the users
// and contacts that reference it, then removes it.
func (s *ConsultantService) Delete(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteConsultant", "consultant_id": id})
	ucLogger.Info("Use case started", nil)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.loader.mustExist(ctx, domain.KindConsultant, id); err != nil {
			return err
		}
		if err := s.links.DetachMember(ctx, domain.KindConsultant, id); err != nil {
			return err
		}
		if err := s.users.ClearConsultant(ctx, id); err != nil {
			return err
		}
		if err := s.contacts.ClearConsultant(ctx, id); err != nil {
			return err
		}
		return s.consultants.Delete(ctx, id)
	})
	if err != nil {
		ucLogger.Error("Failed to delete consultant", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// Users lists the users managed by the consultant.
func (s *ConsultantService) Users(ctx context.Context, id int64) ([]domain.User, error) {
	if err := s.loader.mustExist(ctx, domain.KindConsultant, id); err != nil {
		return nil, err
	}
	return s.users.FindByConsultant(ctx, id)
}

// checkEmail fails with Conflict when another consultant already uses the email.
func (s *ConsultantService) checkEmail(ctx context.Context, email string, selfID int64) error {
	existing, err := s.consultants.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewConflictError(domain.KindConsultant, "email", email)
	}
	return nil
}
