package memory

import (
	"context"
	"fmt"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type ConsultantRepository struct {
	store *Store
}

func (r *ConsultantRepository) FindByID(ctx context.Context, id int64) (*domain.Consultant, error) {
	defer r.store.lock(ctx)()
	c, ok := r.store.state.consultants[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ConsultantRepository) FindByEmail(ctx context.Context, email string) (*domain.Consultant, error) {
	defer r.store.lock(ctx)()
	for _, c := range r.store.state.consultants {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ConsultantRepository) Exists(ctx context.Context, id int64) (bool, error) {
	defer r.store.lock(ctx)()
	_, ok := r.store.state.consultants[id]
	return ok, nil
}

func (r *ConsultantRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Consultant, error) {
	defer r.store.lock(ctx)()
	return byIDs(r.store.state.consultants, ids), nil
}

func (r *ConsultantRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Consultant, int64, error) {
	defer r.store.lock(ctx)()
	all := sortedValues(r.store.state.consultants, nil)
	return append([]domain.Consultant(nil), paginate(all, page)...), int64(len(all)), nil
}

func (r *ConsultantRepository) Create(ctx context.Context, c *domain.Consultant) error {
	defer r.store.lock(ctx)()
	if err := r.checkEmail(c.Email, 0); err != nil {
		return err
	}
	c.ID = r.store.state.next(domain.KindConsultant)
	stored := *c
	stored.Links = nil
	r.store.state.consultants[c.ID] = stored
	return nil
}

func (r *ConsultantRepository) Update(ctx context.Context, c *domain.Consultant) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.state.consultants[c.ID]; !ok {
		return fmt.Errorf("consultant %d does not exist", c.ID)
	}
	if err := r.checkEmail(c.Email, c.ID); err != nil {
		return err
	}
	stored := *c
	stored.Links = nil
	r.store.state.consultants[c.ID] = stored
	return nil
}

func (r *ConsultantRepository) Delete(ctx context.Context, id int64) error {
	defer r.store.lock(ctx)()
	delete(r.store.state.consultants, id)
	return nil
}

func (r *ConsultantRepository) checkEmail(email string, selfID int64) error {
	for id, c := range r.store.state.consultants {
		if id != selfID && c.Email == email {
			return domain.NewConflictError(domain.KindConsultant, "email", email)
		}
	}
	return nil
}
