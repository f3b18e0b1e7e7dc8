// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization, transaction
// management, and persistence.
package commands

import (
	"context"

	"optistore/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it actually uses.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CatalogFactory provides the read-only collaborators used when placing an order.
	CatalogFactory interface {
		ProductCatalog() ports.ProductCatalog
		PrescriptionRegistry() ports.PrescriptionRegistry
	}

	// AccountDirectoryFactory provides user lookups within a transaction.
	AccountDirectoryFactory interface {
		AccountDirectory() ports.AccountDirectory
	}

	// OutboxFactory provides the notification outbox within a transaction.
	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// PlaceOrderUoW is used by order creation.
	PlaceOrderUoW interface {
		TxManager
		OrderRepoFactory
		CatalogFactory
	}

	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW is used by delivery assignment, which reads the delivery
	// person and writes the order in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   person, err := uow.AccountDirectory().Get(ctx, personID)
	//   o, err := uow.OrderRepository().GetByNumberForUpdate(ctx, number)
	//   // ... assign and update
	//
	//   err = uow.Commit(ctx)
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		AccountDirectoryFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// OutboxUoW is used by the notification dispatcher.
	OutboxUoW interface {
		TxManager
		OutboxFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
