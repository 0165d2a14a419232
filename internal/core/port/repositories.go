package port

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

// Lookups return (nil, nil) when the row does not exist; the caller decides
// whether that is a NotFound or a validation failure.

// PropertyRepositoryPort - storage of property rows.
type PropertyRepositoryPort interface {
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
	FindByTitle(ctx context.Context, title string) (*domain.Property, error)
	Exists(ctx context.Context, id int64) (bool, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Property, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error)

	List(ctx context.Context, page domain.PageRequest) ([]domain.Property, int64, error)
	// FindWithFilters returns one page of matches ordered by id plus the
	// total number of matches.
	FindWithFilters(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) ([]domain.Property, int64, error)

	// Create assigns ID to the passed entity.
	Create(ctx context.Context, p *domain.Property) error
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int64) error
}

// ConsultantRepositoryPort - storage of consultant rows.
type ConsultantRepositoryPort interface {
	FindByID(ctx context.Context, id int64) (*domain.Consultant, error)
	FindByEmail(ctx context.Context, email string) (*domain.Consultant, error)
	Exists(ctx context.Context, id int64) (bool, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Consultant, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Consultant, int64, error)

	Create(ctx context.Context, c *domain.Consultant) error
	Update(ctx context.Context, c *domain.Consultant) error
	Delete(ctx context.Context, id int64) error
}

// UserRepositoryPort - storage of user rows.
type UserRepositoryPort interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByNationalID(ctx context.Context, nationalID string) (*domain.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
	FindByConsultant(ctx context.Context, consultantID int64) ([]domain.User, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error)

	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
	// ClearConsultant drops the managing consultant reference from every user.
	ClearConsultant(ctx context.Context, consultantID int64) error
}

// ContactRepositoryPort - storage of contact rows.
type ContactRepositoryPort interface {
	FindByID(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Contact, int64, error)
	FindByUser(ctx context.Context, userID int64) ([]domain.Contact, error)
	FindByProperty(ctx context.Context, propertyID int64) ([]domain.Contact, error)
	FindByConsultant(ctx context.Context, consultantID int64) ([]domain.Contact, error)
	CountByProperty(ctx context.Context, propertyID int64) (int, error)

	Create(ctx context.Context, c *domain.Contact) error
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id int64) error
	DeleteByProperty(ctx context.Context, propertyID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	ClearConsultant(ctx context.Context, consultantID int64) error
}
