package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

// querier is the part of pgxpool.Pool and pgx.Tx the repositories use.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKeyType struct{}

var txKey = txKeyType{}

// Store - PostgreSQL entity store. It is also the port.Transactor: the
// transaction opened by WithinTx travels in the context and every repository
// call made with that context runs inside it.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &Store{pool: pool}, nil
}

// conn returns the transaction carried by ctx or the pool.
func (s *Store) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// WithinTx runs fn in a transaction. Nested calls join the outer one.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return fn(ctx)
	}

	logger := contextkeys.LoggerFromContext(ctx)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", err, port.Fields{"component": "PostgresStore"})
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transaction", err, port.Fields{"component": "PostgresStore"})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Properties() *PropertyRepository    { return &PropertyRepository{store: s} }
func (s *Store) Consultants() *ConsultantRepository { return &ConsultantRepository{store: s} }
func (s *Store) Users() *UserRepository             { return &UserRepository{store: s} }
func (s *Store) Contacts() *ContactRepository       { return &ContactRepository{store: s} }
func (s *Store) Associations() *AssociationRepository {
	return &AssociationRepository{store: s}
}

func (s *Store) exists(ctx context.Context, table string, id int64) (bool, error) {
	var ok bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)
	if err := s.conn(ctx).QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	return ok, nil
}

func (s *Store) deleteByID(ctx context.Context, table string, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
	if _, err := s.conn(ctx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64
	if err := s.conn(ctx).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return total, nil
}

func (s *Store) ids(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := s.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan ids: %w", err)
	}
	return ids, nil
}
