package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request or command,
// keeping concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary over the shared relational
// store. Command handlers begin it, run repository operations through it,
// and commit or roll back as a whole: a failure after a conditional update
// but before commit never leaves a partial transition behind.
type UnitOfWork interface {
	// Begin starts a new database transaction. Calling Begin on an
	// already-started unit of work is a no-op.
	Begin(ctx context.Context) error

	// BeginSnapshot starts a read-only transaction in which every read
	// sees the same database snapshot, regardless of concurrent commits.
	// Used when two reads are compared against each other. A no-op when
	// a transaction is already active.
	BeginSnapshot(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// commit; rolling back a finished transaction returns an error that
	// callers ignore.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// CourierRepository returns a CourierRepository bound to the current
	// transaction.
	CourierRepository() CourierRepository

	// LedgerRepository returns a LedgerRepository bound to the current
	// transaction.
	LedgerRepository() LedgerRepository
}
