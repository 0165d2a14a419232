package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

const userColumns = "id, email, password_hash, name, phone, national_id, consultant_id"

type UserRepository struct {
	store *Store
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.NationalID, &u.ConsultantID)
	return u, err
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s", userColumns, where)
	u, err := scanUser(r.store.conn(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.store.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during user rows iteration: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *UserRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.User, error) {
	return r.findOne(ctx, "national_id = $1", nationalID)
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.store.exists(ctx, "users", id)
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = ANY($1) ORDER BY id ASC", userColumns)
	return r.findMany(ctx, query, ids)
}

func (r *UserRepository) FindByConsultant(ctx context.Context, consultantID int64) ([]domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE consultant_id = $1 ORDER BY id ASC", userColumns)
	return r.findMany(ctx, query, consultantID)
}

func (r *UserRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	total, err := r.store.count(ctx, "SELECT COUNT(*) FROM users")
	if err != nil {
		return nil, 0, err
	}
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY id ASC LIMIT $1 OFFSET $2", userColumns)
	items, err := r.findMany(ctx, query, page.Size, page.Offset())
	return items, total, err
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, phone, national_id, consultant_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.store.conn(ctx).QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.Name, u.Phone, u.NationalID, u.ConsultantID,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", translateError(err, userUniqueValues(u)))
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email = $2, password_hash = $3, name = $4, phone = $5,
			national_id = $6, consultant_id = $7
		WHERE id = $1`
	_, err := r.store.conn(ctx).Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Phone, u.NationalID, u.ConsultantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", u.ID, translateError(err, userUniqueValues(u)))
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.store.deleteByID(ctx, "users", id)
}

func (r *UserRepository) ClearConsultant(ctx context.Context, consultantID int64) error {
	query := "UPDATE users SET consultant_id = NULL WHERE consultant_id = $1"
	if _, err := r.store.conn(ctx).Exec(ctx, query, consultantID); err != nil {
		return fmt.Errorf("failed to clear consultant %d from users: %w", consultantID, err)
	}
	return nil
}
