package usecase

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

type UserService struct {
	tx          port.Transactor
	users       port.UserRepositoryPort
	properties  port.PropertyRepositoryPort
	contacts    port.ContactRepositoryPort
	links       port.AssociationRepositoryPort
	loader      *entityLoader
	maxPageSize int
}

func NewUserService(
	tx port.Transactor,
	properties port.PropertyRepositoryPort,
	consultants port.ConsultantRepositoryPort,
	users port.UserRepositoryPort,
	contacts port.ContactRepositoryPort,
	links port.AssociationRepositoryPort,
	maxPageSize int,
) *UserService {
	return &UserService{
		tx:         tx,
		users:      users,
		properties: properties,
		contacts:   contacts,
		links:      links,
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

func (s *UserService) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.User], error) {
	if err := page.Validate(s.maxPageSize); err != nil {
		return nil, err
	}
	items, total, err := s.users.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, page, total), nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.loader.user(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "CreateUser", "email": in.Email})
	ucLogger.Info("Use case started", nil)

	if err := in.Validate(); err != nil {
		ucLogger.Warn("Validation failed", port.Fields{"reason": err.Error()})
		return nil, err
	}

	var created *domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkUnique(ctx, in, 0); err != nil {
			return err
		}
		if err := s.loader.reference(ctx, domain.KindConsultant, in.ConsultantID, "consultant"); err != nil {
			return err
		}

		u := &domain.User{}
		if err := u.Apply(in); err != nil {
			return err
		}
		if err := s.users.Create(ctx, u); err != nil {
			return err
		}

		var err error
		created, err = s.loader.user(ctx, u.ID)
		return err
	})
	if err != nil {
		ucLogger.Error("Failed to create user", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"user_id": created.ID})
	return created, nil
}

// Update replaces every mutable field, the password included.
func (s *UserService) Update(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateUser", "user_id": id})
	ucLogger.Info("Use case started", nil)

	var updated *domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NewNotFoundError(domain.KindUser, id)
		}
		if err := in.Validate(); err != nil {
			return err
		}
		if err := s.checkUnique(ctx, in, id); err != nil {
			return err
		}
		if err := s.loader.reference(ctx, domain.KindConsultant, in.ConsultantID, "consultant"); err != nil {
			return err
		}

		if err := u.Apply(in); err != nil {
			return err
		}
		if err := s.users.Update(ctx, u); err != nil {
			return err
		}

		updated, err = s.loader.user(ctx, id)
		return err
	})
	if err != nil {
		ucLogger.Error("Failed to update user", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}

// Delete removes the user with the properties it lists and the contacts it
// authored, in that order, inside one transaction.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteUser", "user_id": id})
	ucLogger.Info("Use case started", nil)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.loader.mustExist(ctx, domain.KindUser, id); err != nil {
			return err
		}

		owned, err := s.properties.FindByOwner(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range owned {
			if err := purgeProperty(ctx, s.properties, s.contacts, s.links, p.ID); err != nil {
				return err
			}
		}
		ucLogger.Debug("Owned properties removed", port.Fields{"count": len(owned)})

		if err := s.contacts.DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := s.links.DetachMember(ctx, domain.KindUser, id); err != nil {
			return err
		}
		return s.users.Delete(ctx, id)
	})
	if err != nil {
		ucLogger.Error("Failed to delete user", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// Login resolves the user by email and compares the credential. Both failure
// cases are Unauthorized; only the reason differs.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "Login", "email": email})
	ucLogger.Info("Use case started", nil)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Failed to find user by email", err, nil)
		return nil, err
	}
	if u == nil {
		ucLogger.Warn("Login failed", port.Fields{"reason": domain.ErrEmailNotFound.Reason})
		return nil, domain.ErrEmailNotFound
	}
	if !u.CheckPassword(password) {
		ucLogger.Warn("Login failed", port.Fields{"reason": domain.ErrIncorrectPassword.Reason, "user_id": u.ID})
		return nil, domain.ErrIncorrectPassword
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"user_id": u.ID})
	return u, nil
}

func (s *UserService) checkUnique(ctx context.Context, in domain.UserInput, selfID int64) error {
	byEmail, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if byEmail != nil && byEmail.ID != selfID {
		return domain.NewConflictError(domain.KindUser, "email", in.Email)
	}

	byNationalID, err := s.users.FindByNationalID(ctx, in.NationalID)
	if err != nil {
		return err
	}
	if byNationalID != nil && byNationalID.ID != selfID {
		return domain.NewConflictError(domain.KindUser, "national ID", in.NationalID)
	}
	return nil
}
