package usecase

import (
	"context"
	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
	"sort"
	"time"
)

type PropertyService struct {
	tx          port.Transactor
	properties  port.PropertyRepositoryPort
	contacts    port.ContactRepositoryPort
	links       port.AssociationRepositoryPort
	loader      *entityLoader
	now         func() time.Time
	maxPageSize int
}

func NewPropertyService(
	tx port.Transactor,
	properties port.PropertyRepositoryPort,
	consultants port.ConsultantRepositoryPort,
	users port.UserRepositoryPort,
	contacts port.ContactRepositoryPort,
	links port.AssociationRepositoryPort,
	maxPageSize int,
) *PropertyService {
	return &PropertyService{
		tx:         tx,
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
		now:         time.Now,
		maxPageSize: maxPageSize,
	}
}

// List returns one page of properties ordered by id, without associations.
func (s *PropertyService) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Property], error) {
	if err := page.Validate(s.maxPageSize); err != nil {
		return nil, err
	}
	items, total, err := s.properties.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, page, total), nil
}

func (s *PropertyService) Get(ctx context.Context, id int64) (*domain.Property, error) {
	return s.loader.property(ctx, id)
}

// OwnedBy lists the properties listed by a user.
func (s *PropertyService) OwnedBy(ctx context.Context, userID int64) ([]domain.Property, error) {
	if err := s.loader.mustExist(ctx, domain.KindUser, userID); err != nil {
		return nil, err
	}
	return s.properties.FindByOwner(ctx, userID)
}

// Create stores a new property. The registration time is set here once and
// the supplied consultants become its assigned set.
func (s *PropertyService) Create(ctx context.Context, in domain.PropertyInput) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "CreateProperty", "title": in.Title})
	ucLogger.Info("Use case started", nil)

	if err := in.Validate(); err != nil {
		ucLogger.Warn("Validation failed", port.Fields{"reason": err.Error()})
		return nil, err
	}

	var created *domain.Property
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkReferences(ctx, in, 0); err != nil {
			return err
		}

		p := &domain.Property{RegisteredAt: s.now().UTC()}
		p.Apply(in)
		if err := s.properties.Create(ctx, p); err != nil {
			return err
		}
		if err := s.replaceAssigned(ctx, p.ID, in.ConsultantIDs); err != nil {
			return err
		}

		var err error
		created, err = s.loader.property(ctx, p.ID)
		return err
	})
	if err != nil {
		ucLogger.Error("Failed to create property", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": created.ID})
	return created, nil
}

// Update overwrites every mutable field and replaces the assigned consultants
// with the supplied list. RegisteredAt never changes.
func (s *PropertyService) Update(ctx context.Context, id int64, in domain.PropertyInput) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateProperty", "property_id": id})
	ucLogger.Info("Use case started", nil)

	var updated *domain.Property
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.properties.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFoundError(domain.KindProperty, id)
		}
		if err := in.Validate(); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, in, id); err != nil {
			return err
		}

		p.Apply(in)
		if err := s.properties.Update(ctx, p); err != nil {
			return err
		}
		if err := s.replaceAssigned(ctx, id, in.ConsultantIDs); err != nil {
			return err
		}

		updated, err = s.loader.property(ctx, id)
		return err
	})
	if err != nil {
		ucLogger.Error("Failed to update property", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}

// Delete removes the property, its contacts and every association it is part of.
func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteProperty", "property_id": id})
	ucLogger.Info("Use case started", nil)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.loader.mustExist(ctx, domain.KindProperty, id); err != nil {
			return err
		}
		return purgeProperty(ctx, s.properties, s.contacts, s.links, id)
	})
	if err != nil {
		ucLogger.Error("Failed to delete property", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

func (s *PropertyService) checkReferences(ctx context.Context, in domain.PropertyInput, selfID int64) error {
	existing, err := s.properties.FindByTitle(ctx, in.Title)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewConflictError(domain.KindProperty, "title", in.Title)
	}

	if err := s.loader.reference(ctx, domain.KindUser, in.OwnerID, "owner"); err != nil {
		return err
	}
	for _, consultantID := range in.ConsultantIDs {
		consultantID := consultantID
		if err := s.loader.reference(ctx, domain.KindConsultant, &consultantID, "consultant"); err != nil {
			return err
		}
	}
	return nil
}

// replaceAssigned makes the assigned family of the property equal to ids.
func (s *PropertyService) replaceAssigned(ctx context.Context, propertyID int64, ids []int64) error {
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	current, err := s.links.MembersOf(ctx, domain.FamilyAssigned, propertyID)
	if err != nil {
		return err
	}
	for _, id := range current {
		if _, keep := want[id]; keep {
			delete(want, id)
			continue
		}
		if _, err := s.links.Remove(ctx, domain.FamilyAssigned, propertyID, id); err != nil {
			return err
		}
	}

	added := make([]int64, 0, len(want))
	for id := range want {
		added = append(added, id)
	}
	sort.Slice(added, func(i, j int) bool { return added[i] < added[j] })
	for _, id := range added {
		if _, err := s.links.Add(ctx, domain.FamilyAssigned, propertyID, id); err != nil {
			return err
		}
	}
	return nil
}
