package queries

import (
	"context"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order owned by the caller. Orders of other
// users are indistinguishable from missing ones.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}
	if err := access.Authorize(access.GetOwnOrder, query.Caller()); err != nil {
		return OrderResponse{}, err
	}

	orders, err := loadOrders(ctx, h.db,
		"o.order_number = ? AND o.user_id = ?",
		"",
		query.OrderNumber(),
		query.Caller().UserID().String(),
	)
	if err != nil {
		return OrderResponse{}, err
	}
	if len(orders) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderNumber())
	}
	return orders[0], nil
}
