package commands

import (
	"context"
	"time"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders. Products are resolved through the catalog
// to snapshot their names; the order, its items and its billing info are written in
// one transaction. The confirmation email is queued after the commit.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrDuplicateOrderNumber) {
//	    // number already taken
//	}
type CreateOrderCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory PlaceOrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the stored order.
// Nothing is persisted when any product or prescription cannot be found.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Authorize(access.CreateOrder, cmd.Caller()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, err := h.resolveItems(ctx, uow, cmd.lines)
	if err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.OrderNumber(),
		cmd.Caller().UserID(),
		cmd.PaymentMethod(),
		cmd.DeliveryOption(),
		cmd.TotalPrice(),
		items,
		cmd.Billing(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

func (h *CreateOrderCommandHandler) resolveItems(
	ctx context.Context,
	uow PlaceOrderUoW,
	lines []validatedLine,
) ([]order.Item, error) {
	products := uow.ProductCatalog()
	prescriptions := uow.PrescriptionRegistry()

	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		product, err := products.Get(ctx, l.productID)
		if err != nil {
			return nil, err
		}

		if l.prescriptionID != nil {
			exists, existsErr := prescriptions.Exists(ctx, *l.prescriptionID)
			if existsErr != nil {
				return nil, existsErr
			}
			if !exists {
				return nil, errs.NewObjectNotFoundError("prescription", l.prescriptionID.String())
			}
		}

		item, err := order.NewItem(l.productID, product.Name(), l.quantity, l.price, l.lensOption, l.prescriptionID)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
