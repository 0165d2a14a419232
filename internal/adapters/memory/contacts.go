package memory

import (
	"context"
	"fmt"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type ContactRepository struct {
	store *Store
}

func cloneContact(c domain.Contact) domain.Contact {
	c.UserID = copyID(c.UserID)
	c.PropertyID = copyID(c.PropertyID)
	c.ConsultantID = copyID(c.ConsultantID)
	return c
}

func cloneContacts(items []domain.Contact) []domain.Contact {
	for i := range items {
		items[i] = cloneContact(items[i])
	}
	return items
}

func (r *ContactRepository) FindByID(ctx context.Context, id int64) (*domain.Contact, error) {
	defer r.store.lock(ctx)()
	c, ok := r.store.state.contacts[id]
	if !ok {
		return nil, nil
	}
	c = cloneContact(c)
	return &c, nil
}

func (r *ContactRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Contact, int64, error) {
	defer r.store.lock(ctx)()
	all := sortedValues(r.store.state.contacts, nil)
	items := append([]domain.Contact(nil), paginate(all, page)...)
	return cloneContacts(items), int64(len(all)), nil
}

func (r *ContactRepository) where(ctx context.Context, keep func(domain.Contact) bool) []domain.Contact {
	defer r.store.lock(ctx)()
	return cloneContacts(sortedValues(r.store.state.contacts, keep))
}

func (r *ContactRepository) FindByUser(ctx context.Context, userID int64) ([]domain.Contact, error) {
	return r.where(ctx, func(c domain.Contact) bool { return sameID(c.UserID, userID) }), nil
}

func (r *ContactRepository) FindByProperty(ctx context.Context, propertyID int64) ([]domain.Contact, error) {
	return r.where(ctx, func(c domain.Contact) bool { return sameID(c.PropertyID, propertyID) }), nil
}

func (r *ContactRepository) FindByConsultant(ctx context.Context, consultantID int64) ([]domain.Contact, error) {
	return r.where(ctx, func(c domain.Contact) bool { return sameID(c.ConsultantID, consultantID) }), nil
}

func (r *ContactRepository) CountByProperty(ctx context.Context, propertyID int64) (int, error) {
	items, err := r.FindByProperty(ctx, propertyID)
	return len(items), err
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	defer r.store.lock(ctx)()
	c.ID = r.store.state.next(domain.KindContact)
	r.store.state.contacts[c.ID] = cloneContact(*c)
	return nil
}

func (r *ContactRepository) Update(ctx context.Context, c *domain.Contact) error {
	defer r.store.lock(ctx)()
	stored, ok := r.store.state.contacts[c.ID]
	if !ok {
		return fmt.Errorf("contact %d does not exist", c.ID)
	}
	updated := cloneContact(*c)
	updated.CreatedAt = stored.CreatedAt
	r.store.state.contacts[c.ID] = updated
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	defer r.store.lock(ctx)()
	delete(r.store.state.contacts, id)
	return nil
}

func (r *ContactRepository) deleteWhere(ctx context.Context, match func(domain.Contact) bool) {
	defer r.store.lock(ctx)()
	for id, c := range r.store.state.contacts {
		if match(c) {
			delete(r.store.state.contacts, id)
		}
	}
}

func (r *ContactRepository) DeleteByProperty(ctx context.Context, propertyID int64) error {
	r.deleteWhere(ctx, func(c domain.Contact) bool { return sameID(c.PropertyID, propertyID) })
	return nil
}

func (r *ContactRepository) DeleteByUser(ctx context.Context, userID int64) error {
	r.deleteWhere(ctx, func(c domain.Contact) bool { return sameID(c.UserID, userID) })
	return nil
}

func (r *ContactRepository) ClearConsultant(ctx context.Context, consultantID int64) error {
	defer r.store.lock(ctx)()
	for id, c := range r.store.state.contacts {
		if sameID(c.ConsultantID, consultantID) {
			c.ConsultantID = nil
			r.store.state.contacts[id] = c
		}
	}
	return nil
}
