package port

import "context"

// Transactor runs fn inside one storage transaction. Repository calls made
// with the ctx passed to fn join that transaction. A returned error rolls
// everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
