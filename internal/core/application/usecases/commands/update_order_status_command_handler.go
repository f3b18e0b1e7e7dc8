package commands

import (
	"context"
	"time"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies status changes requested by staff roles.
// The order row is locked for the duration of the transaction so concurrent
// changes are applied one after another.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle changes the status, stamps status_updated_at and queues the customer
// notification after commit.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Authorize(access.UpdateOrderStatus, cmd.Caller()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByNumberForUpdate(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, err
	}

	if cmd.OwnOrderOnly() && !cmd.Caller().Owns(o.OwnerID()) {
		return nil, errs.NewObjectNotFoundError("order", cmd.OrderNumber())
	}

	if err = o.ChangeStatus(cmd.Status(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
