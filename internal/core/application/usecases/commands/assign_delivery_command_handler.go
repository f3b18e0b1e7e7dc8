package commands

import (
	"context"
	"time"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/core/domain/services"
)

// AssignDeliveryCommandHandler attaches a delivery person to an order and ships it.
//
// The order row is read with a lock, so of two concurrent assignments the second
// one sees the first delivery and fails with order.ErrDeliveryAlreadyAssigned.
// The unique index on deliveries.order_id backs this up at the storage level.
type AssignDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	dispatcher services.DeliveryDispatcher
}

func NewAssignDeliveryCommandHandler(uowFactory DeliveryUoWFactory) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDeliveryDispatcher(),
	}
}

func (h *AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Authorize(access.AssignDelivery, cmd.Caller()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	person, err := uow.AccountDirectory().Get(ctx, cmd.DeliveryPersonID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByNumberForUpdate(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, err
	}

	if err = h.dispatcher.Dispatch(o, person, time.Now().UTC()); err != nil {
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
