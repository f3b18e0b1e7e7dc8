package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories obtained
// after Begin run inside the transaction. Events of the aggregates written through
// them are published once Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ProductCatalog() ProductCatalog
	AccountDirectory() AccountDirectory
	PrescriptionRegistry() PrescriptionRegistry
	NotificationOutbox() NotificationOutbox
}
