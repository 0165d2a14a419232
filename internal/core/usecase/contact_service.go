package usecase

import (
	"context"
	"fmt"
	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
	"time"
)

type ContactService struct {
	tx          port.Transactor
	contacts    port.ContactRepositoryPort
	notifier    port.ContactNotifierPort
	loader      *entityLoader
	now         func() time.Time
	maxPageSize int
}

func NewContactService(
	tx port.Transactor,
	properties port.PropertyRepositoryPort,
	consultants port.ConsultantRepositoryPort,
	users port.UserRepositoryPort,
	contacts port.ContactRepositoryPort,
	links port.AssociationRepositoryPort,
	notifier port.ContactNotifierPort,
	maxPageSize int,
) *ContactService {
	return &ContactService{
		tx:       tx,
		contacts: contacts,
		notifier: notifier,
		loader: &entityLoader{
			properties:  properties,
			consultants: consultants,
			users:       users,
			contacts:    contacts,
			links:       links,
		},
		now:         time.Now,
		maxPageSize: maxPageSize,
	}
}

func (s *ContactService) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Contact], error) {
	if err := page.Validate(s.maxPageSize); err != nil {
		return nil, err
	}
	items, total, err := s.contacts.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, page, total), nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	c, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError(domain.KindContact, id)
	}
	return c, nil
}

// Create stores a new inquiry. Every reference it carries must already exist.
func (s *ContactService) Create(ctx context.Context, in domain.ContactInput) (*domain.Contact, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "CreateContact", "email": in.Email})
	ucLogger.Info("Use case started", nil)

	if err := in.Validate(); err != nil {
		ucLogger.Warn("Validation failed", port.Fields{"reason": err.Error()})
		return nil, err
	}

	contact := &domain.Contact{CreatedAt: s.now().UTC()}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkReferences(ctx, in); err != nil {
			return err
		}
		if in.PropertyID != nil {
			if err := s.checkCapacity(ctx, *in.PropertyID); err != nil {
				return err
			}
		}
		contact.Apply(in)
		return s.contacts.Create(ctx, contact)
	})
	if err != nil {
		ucLogger.Error("Failed to create contact", err, nil)
		return nil, err
	}

	if err := s.notifier.NotifyContactCreated(ctx, *contact); err != nil {
		ucLogger.Warn("Failed to publish contact notification", port.Fields{"error": err.Error(), "contact_id": contact.ID})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"contact_id": contact.ID})
	return contact, nil
}

// AddToProperty creates an inquiry bound to the given property.
func (s *ContactService) AddToProperty(ctx context.Context, propertyID int64, in domain.ContactInput) (*domain.Contact, error) {
	if err := s.loader.mustExist(ctx, domain.KindProperty, propertyID); err != nil {
		return nil, err
	}
	in.PropertyID = &propertyID
	return s.Create(ctx, in)
}

// Update replaces every mutable field. CreatedAt is kept.
func (s *ContactService) Update(ctx context.Context, id int64, in domain.ContactInput) (*domain.Contact, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateContact", "contact_id": id})
	ucLogger.Info("Use case started", nil)

	var updated *domain.Contact
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.contacts.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewNotFoundError(domain.KindContact, id)
		}
		if err := in.Validate(); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, in); err != nil {
			return err
		}
		if in.PropertyID != nil && (c.PropertyID == nil || *c.PropertyID != *in.PropertyID) {
			if err := s.checkCapacity(ctx, *in.PropertyID); err != nil {
				return err
			}
		}

		c.Apply(in)
		if err := s.contacts.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		ucLogger.Error("Failed to update contact", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteContact", "contact_id": id})
	ucLogger.Info("Use case started", nil)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.loader.mustExist(ctx, domain.KindContact, id); err != nil {
			return err
		}
		return s.contacts.Delete(ctx, id)
	})
	if err != nil {
		ucLogger.Error("Failed to delete contact", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

func (s *ContactService) ByUser(ctx context.Context, userID int64) ([]domain.Contact, error) {
	if err := s.loader.mustExist(ctx, domain.KindUser, userID); err != nil {
		return nil, err
	}
	return s.contacts.FindByUser(ctx, userID)
}

func (s *ContactService) ByProperty(ctx context.Context, propertyID int64) ([]domain.Contact, error) {
	if err := s.loader.mustExist(ctx, domain.KindProperty, propertyID); err != nil {
		return nil, err
	}
	return s.contacts.FindByProperty(ctx, propertyID)
}

func (s *ContactService) ByConsultant(ctx context.Context, consultantID int64) ([]domain.Contact, error) {
	if err := s.loader.mustExist(ctx, domain.KindConsultant, consultantID); err != nil {
		return nil, err
	}
	return s.contacts.FindByConsultant(ctx, consultantID)
}

func (s *ContactService) checkReferences(ctx context.Context, in domain.ContactInput) error {
	if err := s.loader.reference(ctx, domain.KindUser, in.UserID, "user"); err != nil {
		return err
	}
	if err := s.loader.reference(ctx, domain.KindProperty, in.PropertyID, "property"); err != nil {
		return err
	}
	return s.loader.reference(ctx, domain.KindConsultant, in.ConsultantID, "consultant")
}

func (s *ContactService) checkCapacity(ctx context.Context, propertyID int64) error {
	count, err := s.contacts.CountByProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	if count >= domain.MaxContactsPerProperty {
		return domain.NewValidationError(fmt.Sprintf("a property can have at most %d contacts", domain.MaxContactsPerProperty))
	}
	return nil
}
