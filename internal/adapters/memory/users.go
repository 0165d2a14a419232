package memory

import (
	"context"
	"fmt"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type UserRepository struct {
	store *Store
}

func cloneUser(u domain.User) domain.User {
	u.ConsultantID = copyID(u.ConsultantID)
	u.Links = nil
	return u
}

func cloneUsers(items []domain.User) []domain.User {
	for i := range items {
		items[i] = cloneUser(items[i])
	}
	return items
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	defer r.store.lock(ctx)()
	u, ok := r.store.state.users[id]
	if !ok {
		return nil, nil
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, func(u domain.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.User, error) {
	return r.findOne(ctx, func(u domain.User) bool { return u.NationalID == nationalID })
}

func (r *UserRepository) findOne(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	defer r.store.lock(ctx)()
	for _, u := range r.store.state.users {
		if match(u) {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	defer r.store.lock(ctx)()
	_, ok := r.store.state.users[id]
	return ok, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	defer r.store.lock(ctx)()
	return cloneUsers(byIDs(r.store.state.users, ids)), nil
}

func (r *UserRepository) FindByConsultant(ctx context.Context, consultantID int64) ([]domain.User, error) {
	defer r.store.lock(ctx)()
	return cloneUsers(sortedValues(r.store.state.users, func(u domain.User) bool {
		return sameID(u.ConsultantID, consultantID)
	})), nil
}

func (r *UserRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	defer r.store.lock(ctx)()
	all := sortedValues(r.store.state.users, nil)
	items := append([]domain.User(nil), paginate(all, page)...)
	return cloneUsers(items), int64(len(all)), nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	defer r.store.lock(ctx)()
	if err := r.checkUnique(*u, 0); err != nil {
		return err
	}
	u.ID = r.store.state.next(domain.KindUser)
	r.store.state.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.state.users[u.ID]; !ok {
		return fmt.Errorf("user %d does not exist", u.ID)
	}
	if err := r.checkUnique(*u, u.ID); err != nil {
		return err
	}
	r.store.state.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	defer r.store.lock(ctx)()
	delete(r.store.state.users, id)
	return nil
}

func (r *UserRepository) ClearConsultant(ctx context.Context, consultantID int64) error {
	defer r.store.lock(ctx)()
	for id, u := range r.store.state.users {
		if sameID(u.ConsultantID, consultantID) {
			u.ConsultantID = nil
			r.store.state.users[id] = u
		}
	}
	return nil
}

func (r *UserRepository) checkUnique(u domain.User, selfID int64) error {
	for id, other := range r.store.state.users {
		if id == selfID {
			continue
		}
		if other.Email == u.Email {
			return domain.NewConflictError(domain.KindUser, "email", u.Email)
		}
		if other.NationalID == u.NationalID {
			return domain.NewConflictError(domain.KindUser, "national ID", u.NationalID)
		}
	}
	return nil
}
