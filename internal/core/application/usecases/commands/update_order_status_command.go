package commands

import (
	"errors"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"
	"optistore/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand changes the status of an order.
//
// When ownOrderOnly is set the order must belong to the caller; orders of other
// users are reported as not found. The role policy applies either way.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	caller       access.Caller
	orderNumber  string
	status       order.Status
	ownOrderOnly bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand checks the caller's role first, so a caller who may
// not change statuses gets a permission error whatever value was sent. It then
// parses status and returns an error matching order.ErrInvalidStatus for values
// outside the five known statuses.
func NewUpdateOrderStatusCommand(
	caller access.Caller,
	orderNumber string,
	status string,
	ownOrderOnly bool,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		ownOrderOnly: ownOrderOnly,
		guard:        guard.NewConstructorGuard(),
	}

	if err := cmd.setCaller(caller); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Caller() access.Caller {
	return c.caller
}

func (c UpdateOrderStatusCommand) OrderNumber() string {
	return c.orderNumber
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c UpdateOrderStatusCommand) OwnOrderOnly() bool {
	return c.ownOrderOnly
}

func (c *UpdateOrderStatusCommand) setCaller(caller access.Caller) error {
	if err := access.Authorize(access.UpdateOrderStatus, caller); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *UpdateOrderStatusCommand) setOrderNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order_number")
	}
	c.orderNumber = number
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(raw string) error {
	st, err := order.ParseStatus(raw)
	if err != nil {
		return err
	}
	c.status = st
	return nil
}
