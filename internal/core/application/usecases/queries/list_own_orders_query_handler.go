package queries

import (
	"context"

	"optistore/internal/core/domain/model/access"

	"gorm.io/gorm"
)

// ListOwnOrdersQueryHandler returns the caller's orders in the order they were placed.
type ListOwnOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOwnOrdersQueryHandler(db *gorm.DB) ListOwnOrdersQueryHandler {
	return ListOwnOrdersQueryHandler{db: db}
}

func (h ListOwnOrdersQueryHandler) Handle(ctx context.Context, query ListOwnOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := access.Authorize(access.ListOwnOrders, query.Caller()); err != nil {
		return nil, err
	}

	return loadOrders(ctx, h.db,
		"o.user_id = ?",
		"o.created_at ASC, o.order_number ASC",
		query.Caller().UserID().String(),
	)
}
