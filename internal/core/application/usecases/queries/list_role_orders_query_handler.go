package queries

import (
	"context"

	"optistore/internal/core/domain/model/access"

	"gorm.io/gorm"
)

// ListRoleOrdersQueryHandler lists orders by role scope, newest first.
// Customers see their own orders, staff roles see every order and roles without
// a scope get an empty list.
type ListRoleOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListRoleOrdersQueryHandler(db *gorm.DB) ListRoleOrdersQueryHandler {
	return ListRoleOrdersQueryHandler{db: db}
}

func (h ListRoleOrdersQueryHandler) Handle(ctx context.Context, query ListRoleOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	caller := query.Caller()
	if err := access.Authorize(access.ListRoleOrders, caller); err != nil {
		return nil, err
	}

	const newestFirst = "o.created_at DESC, o.order_number DESC"

	switch access.OrderScope(caller.Role()) {
	case access.ScopeAll:
		return loadOrders(ctx, h.db, "", newestFirst)
	case access.ScopeOwn:
		return loadOrders(ctx, h.db, "o.user_id = ?", newestFirst, caller.UserID().String())
	default:
		return make([]OrderResponse, 0), nil
	}
}
