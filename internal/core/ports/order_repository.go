// Package ports defines the contracts between the order workflow and the
// infrastructure that stores orders, reads collaborator data and sends mail.
package ports

import (
	"context"

	"optistore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The aggregate is stored together with its items, billing snapshot and delivery.
type OrderRepository interface {
	// Add persists a new order with its items and billing in the current transaction.
	// Returns an error matching order.ErrDuplicateOrderNumber when the number is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status changes and a newly assigned delivery.
	// Returns an error matching order.ErrDeliveryAlreadyAssigned when another
	// transaction assigned a delivery first.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByNumber loads the order with the given number.
	// Returns errs.ErrObjectNotFound when it does not exist.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetByNumberForUpdate loads the order like GetByNumber and locks its row
	// until the current transaction ends.
	GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error)
}
