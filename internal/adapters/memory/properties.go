package memory

import (
	"context"
	"fmt"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type PropertyRepository struct {
	store *Store
}

func cloneProperty(p domain.Property) domain.Property {
	p.OwnerID = copyID(p.OwnerID)
	p.Links = nil
	return p
}

func cloneProperties(items []domain.Property) []domain.Property {
	for i := range items {
		items[i] = cloneProperty(items[i])
	}
	return items
}

func (r *PropertyRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	defer r.store.lock(ctx)()
	p, ok := r.store.state.properties[id]
	if !ok {
		return nil, nil
	}
	p = cloneProperty(p)
	return &p, nil
}

func (r *PropertyRepository) FindByTitle(ctx context.Context, title string) (*domain.Property, error) {
	defer r.store.lock(ctx)()
	for _, p := range r.store.state.properties {
		if p.Title == title {
			p = cloneProperty(p)
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PropertyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	defer r.store.lock(ctx)()
	_, ok := r.store.state.properties[id]
	return ok, nil
}

func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Property, error) {
	defer r.store.lock(ctx)()
	return cloneProperties(byIDs(r.store.state.properties, ids)), nil
}

func (r *PropertyRepository) FindByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	defer r.store.lock(ctx)()
	items := sortedValues(r.store.state.properties, func(p domain.Property) bool {
		return sameID(p.OwnerID, ownerID)
	})
	return cloneProperties(items), nil
}

func (r *PropertyRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Property, int64, error) {
	return r.FindWithFilters(ctx, domain.PropertyFilter{}, page)
}

func (r *PropertyRepository) FindWithFilters(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) ([]domain.Property, int64, error) {
	defer r.store.lock(ctx)()
	matched := sortedValues(r.store.state.properties, filter.Matches)
	items := append([]domain.Property(nil), paginate(matched, page)...)
	return cloneProperties(items), int64(len(matched)), nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	defer r.store.lock(ctx)()
	if err := r.checkTitle(p.Title, 0); err != nil {
		return err
	}
	p.ID = r.store.state.next(domain.KindProperty)
	r.store.state.properties[p.ID] = cloneProperty(*p)
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.state.properties[p.ID]; !ok {
		return fmt.Errorf("property %d does not exist", p.ID)
	}
	if err := r.checkTitle(p.Title, p.ID); err != nil {
		return err
	}
	r.store.state.properties[p.ID] = cloneProperty(*p)
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	defer r.store.lock(ctx)()
	delete(r.store.state.properties, id)
	return nil
}

func (r *PropertyRepository) checkTitle(title string, selfID int64) error {
	for id, p := range r.store.state.properties {
		if id != selfID && p.Title == title {
			return domain.NewConflictError(domain.KindProperty, "title", title)
		}
	}
	return nil
}
