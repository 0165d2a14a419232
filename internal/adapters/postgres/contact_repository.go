package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

const contactColumns = "id, email, message, status, created_at, user_id, property_id, consultant_id"

type ContactRepository struct {
	store *Store
}

func scanContact(row pgx.Row) (domain.Contact, error) {
	var (
		c      domain.Contact
		status string
	)
	err := row.Scan(&c.ID, &c.Email, &c.Message, &status, &c.CreatedAt, &c.UserID, &c.PropertyID, &c.ConsultantID)
	c.Status = domain.ContactStatus(status)
	return c, err
}

func (r *ContactRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.Contact, error) {
	rows, err := r.store.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during contact rows iteration: %w", err)
	}
	return contacts, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id int64) (*domain.Contact, error) {
	query := fmt.Sprintf("SELECT %s FROM contacts WHERE id = $1", contactColumns)
	c, err := scanContact(r.store.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &c, nil
}

func (r *ContactRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Contact, int64, error) {
	total, err := r.store.count(ctx, "SELECT COUNT(*) FROM contacts")
	if err != nil {
		return nil, 0, err
	}
	query := fmt.Sprintf("SELECT %s FROM contacts ORDER BY id ASC LIMIT $1 OFFSET $2", contactColumns)
	items, err := r.findMany(ctx, query, page.Size, page.Offset())
	return items, total, err
}

func (r *ContactRepository) findBy(ctx context.Context, column string, id int64) ([]domain.Contact, error) {
	query := fmt.Sprintf("SELECT %s FROM contacts WHERE %s = $1 ORDER BY id ASC", contactColumns, column)
	return r.findMany(ctx, query, id)
}

func (r *ContactRepository) FindByUser(ctx context.Context, userID int64) ([]domain.Contact, error) {
	return r.findBy(ctx, "user_id", userID)
}

func (r *ContactRepository) FindByProperty(ctx context.Context, propertyID int64) ([]domain.Contact, error) {
	return r.findBy(ctx, "property_id", propertyID)
}

func (r *ContactRepository) FindByConsultant(ctx context.Context, consultantID int64) ([]domain.Contact, error) {
	return r.findBy(ctx, "consultant_id", consultantID)
}

func (r *ContactRepository) CountByProperty(ctx context.Context, propertyID int64) (int, error) {
	total, err := r.store.count(ctx, "SELECT COUNT(*) FROM contacts WHERE property_id = $1", propertyID)
	return int(total), err
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	query := `INSERT INTO contacts (email, message, status, created_at, user_id, property_id, consultant_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.store.conn(ctx).QueryRow(ctx, query,
		c.Email, c.Message, string(c.Status), c.CreatedAt, c.UserID, c.PropertyID, c.ConsultantID,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// Update leaves created_at alone.
func (r *ContactRepository) Update(ctx context.Context, c *domain.Contact) error {
	query := `UPDATE contacts SET email = $2, message = $3, status = $4, user_id = $5,
			property_id = $6, consultant_id = $7
		WHERE id = $1`
	_, err := r.store.conn(ctx).Exec(ctx, query,
		c.ID, c.Email, c.Message, string(c.Status), c.UserID, c.PropertyID, c.ConsultantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact %d: %w", c.ID, err)
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	return r.store.deleteByID(ctx, "contacts", id)
}

func (r *ContactRepository) exec(ctx context.Context, query string, id int64) error {
	if _, err := r.store.conn(ctx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to update contacts: %w", err)
	}
	return nil
}

func (r *ContactRepository) DeleteByProperty(ctx context.Context, propertyID int64) error {
	return r.exec(ctx, "DELETE FROM contacts WHERE property_id = $1", propertyID)
}

func (r *ContactRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.exec(ctx, "DELETE FROM contacts WHERE user_id = $1", userID)
}

func (r *ContactRepository) ClearConsultant(ctx context.Context, consultantID int64) error {
	return r.exec(ctx, "UPDATE contacts SET consultant_id = NULL WHERE consultant_id = $1", consultantID)
}
