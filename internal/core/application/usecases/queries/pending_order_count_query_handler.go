package queries

import (
	"context"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type PendingOrderCountQueryHandler struct {
	db *gorm.DB
}

func NewPendingOrderCountQueryHandler(db *gorm.DB) PendingOrderCountQueryHandler {
	return PendingOrderCountQueryHandler{db: db}
}

func (h PendingOrderCountQueryHandler) Handle(ctx context.Context, query PendingOrderCountQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}
	if err := access.Authorize(access.CountPendingOrders, query.Caller()); err != nil {
		return 0, err
	}

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM orders WHERE status = ?
	`, string(order.Pending)).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
