package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

const propertyColumns = `p.id, p.title, p.description, p.price, p.address, p.type, p.bedrooms,
	p.bathrooms, p.area, p.status, p.image_url, p.category, p.registered_at, p.owner_id`

type PropertyRepository struct {
	store *Store
}

func scanProperty(row pgx.Row) (domain.Property, error) {
	var (
		p          domain.Property
		propType   string
		propStatus string
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Address, &propType, &p.Bedrooms,
		&p.Bathrooms, &p.Area, &propStatus, &p.ImageURL, &p.Category, &p.RegisteredAt, &p.OwnerID,
	)
	p.Type = domain.PropertyType(propType)
	p.Status = domain.PropertyStatus(propStatus)
	return p, err
}

func (r *PropertyRepository) findOne(ctx context.Context, where string, arg any) (*domain.Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties p WHERE %s", propertyColumns, where)
	p, err := scanProperty(r.store.conn(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

func (r *PropertyRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.Property, error) {
	rows, err := r.store.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during property rows iteration: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	return r.findOne(ctx, "p.id = $1", id)
}

func (r *PropertyRepository) FindByTitle(ctx context.Context, title string) (*domain.Property, error) {
	return r.findOne(ctx, "p.title = $1", title)
}

func (r *PropertyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.store.exists(ctx, "properties", id)
}

func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Property, error) {
	if len(ids) == 0 {
		return []domain.Property{}, nil
	}
	query := fmt.Sprintf("SELECT %s FROM properties p WHERE p.id = ANY($1) ORDER BY p.id ASC", propertyColumns)
	return r.findMany(ctx, query, ids)
}

func (r *PropertyRepository) FindByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties p WHERE p.owner_id = $1 ORDER BY p.id ASC", propertyColumns)
	return r.findMany(ctx, query, ownerID)
}

func (r *PropertyRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Property, int64, error) {
	return r.FindWithFilters(ctx, domain.PropertyFilter{}, page)
}

// FindWithFilters runs the count and the page query in one transaction so the
// total matches the rows it was computed over.
func (r *PropertyRepository) FindWithFilters(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) ([]domain.Property, int64, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresPropertyRepository",
		"method":    "FindWithFilters",
		"limit":     page.Size,
		"offset":    page.Offset(),
	})

	whereClause, args := applyFilters(filter)

	var (
		properties []domain.Property
		totalCount int64
	)
	err := r.store.WithinTx(ctx, func(ctx context.Context) error {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties p %s", whereClause)
		var err error
		totalCount, err = r.store.count(ctx, countQuery, args...)
		if err != nil {
			repoLogger.Error("Failed to count properties with filters", err, port.Fields{"query": countQuery})
			return err
		}
		repoLogger.Debug("Total properties found", port.Fields{"total_count": totalCount})

		if totalCount == 0 {
			properties = []domain.Property{}
			return nil
		}

		dataQuery := fmt.Sprintf("SELECT %s FROM properties p %s ORDER BY p.id ASC LIMIT $%d OFFSET $%d",
			propertyColumns, whereClause, len(args)+1, len(args)+2)
		pageArgs := append(append([]interface{}{}, args...), page.Size, page.Offset())

		properties, err = r.findMany(ctx, dataQuery, pageArgs...)
		if err != nil {
			repoLogger.Error("Failed to find properties with filters", err, port.Fields{"query": dataQuery})
		}
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	repoLogger.Debug("Successfully found properties for page", port.Fields{"count": len(properties)})
	return properties, totalCount, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO properties (title, description, price, address, type, bedrooms, bathrooms,
			area, status, image_url, category, registered_at, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	err := r.store.conn(ctx).QueryRow(ctx, query,
		p.Title, p.Description, p.Price, p.Address, string(p.Type), p.Bedrooms, p.Bathrooms,
		p.Area, string(p.Status), p.ImageURL, p.Category, p.RegisteredAt, p.OwnerID,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", translateError(err, propertyUniqueValues(p)))
	}
	return nil
}

// Update writes every mutable column; registered_at is never touched.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	query := `UPDATE properties SET title = $2, description = $3, price = $4, address = $5, type = $6,
			bedrooms = $7, bathrooms = $8, area = $9, status = $10, image_url = $11, category = $12, owner_id = $13
		WHERE id = $1`

	_, err := r.store.conn(ctx).Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.Address, string(p.Type), p.Bedrooms,
		p.Bathrooms, p.Area, string(p.Status), p.ImageURL, p.Category, p.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property %d: %w", p.ID, translateError(err, propertyUniqueValues(p)))
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	return r.store.deleteByID(ctx, "properties", id)
}
