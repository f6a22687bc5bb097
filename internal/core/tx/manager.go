// Package tx provides transaction management abstractions.
// Domain services depend on this interface, not on the PostgreSQL
// implementation in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT and ROLLBACK.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back;
	// otherwise it is committed. Nested calls reuse the transaction
	// already present in the context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
