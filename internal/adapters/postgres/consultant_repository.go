package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

const consultantColumns = "id, name, email, phone"

type ConsultantRepository struct {
	store *Store
}

func scanConsultant(row pgx.Row) (domain.Consultant, error) {
	var c domain.Consultant
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	return c, err
}

func (r *ConsultantRepository) findOne(ctx context.Context, where string, arg any) (*domain.Consultant, error) {
	query := fmt.Sprintf("SELECT %s FROM consultants WHERE %s", consultantColumns, where)
	c, err := scanConsultant(r.store.conn(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get consultant: %w", err)
	}
	return &c, nil
}

func (r *ConsultantRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.Consultant, error) {
	rows, err := r.store.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query consultants: %w", err)
	}
	defer rows.Close()

	consultants := make([]domain.Consultant, 0)
	for rows.Next() {
		c, err := scanConsultant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consultant: %w", err)
		}
		consultants = append(consultants, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during consultant rows iteration: %w", err)
	}
	return consultants, nil
}

func (r *ConsultantRepository) FindByID(ctx context.Context, id int64) (*domain.Consultant, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *ConsultantRepository) FindByEmail(ctx context.Context, email string) (*domain.Consultant, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *ConsultantRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.store.exists(ctx, "consultants", id)
}

func (r *ConsultantRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Consultant, error) {
	if len(ids) == 0 {
		return []domain.Consultant{}, nil
	}
	query := fmt.Sprintf("SELECT %s FROM consultants WHERE id = ANY($1) ORDER BY id ASC", consultantColumns)
	return r.findMany(ctx, query, ids)
}

func (r *ConsultantRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Consultant, int64, error) {
	total, err := r.store.count(ctx, "SELECT COUNT(*) FROM consultants")
	if err != nil {
		return nil, 0, err
	}
	query := fmt.Sprintf("SELECT %s FROM consultants ORDER BY id ASC LIMIT $1 OFFSET $2", consultantColumns)
	items, err := r.findMany(ctx, query, page.Size, page.Offset())
	return items, total, err
}

func (r *ConsultantRepository) Create(ctx context.Context, c *domain.Consultant) error {
	query := "INSERT INTO consultants (name, email, phone) VALUES ($1, $2, $3) RETURNING id"
	if err := r.store.conn(ctx).QueryRow(ctx, query, c.Name, c.Email, c.Phone).Scan(&c.ID); err != nil {
		return fmt.Errorf("failed to insert consultant: %w", translateError(err, consultantUniqueValues(c)))
	}
	return nil
}

func (r *ConsultantRepository) Update(ctx context.Context, c *domain.Consultant) error {
	query := "UPDATE consultants SET name = $2, email = $3, phone = $4 WHERE id = $1"
	if _, err := r.store.conn(ctx).Exec(ctx, query, c.ID, c.Name, c.Email, c.Phone); err != nil {
		return fmt.Errorf("failed to update consultant %d: %w", c.ID, translateError(err, consultantUniqueValues(c)))
	}
	return nil
}

func (r *ConsultantRepository) Delete(ctx context.Context, id int64) error {
	return r.store.deleteByID(ctx, "consultants", id)
}
