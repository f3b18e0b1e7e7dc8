package commands

import (
	"errors"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/pkg/errs"
	"optistore/internal/pkg/guard"
)

var (
	ErrAssignDeliveryCommandIsNotConstructed = errors.New(
		"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
	)
)

// AssignDeliveryCommand hands an order to a delivery person.
//
// Example:
//
//	cmd, err := NewAssignDeliveryCommand(admin, "ORD-1001", deliveryPersonID)
//	if err != nil {
//	    return err
//	}
//	shipped, err := handler.Handle(ctx, cmd)
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	caller           access.Caller
	orderNumber      string
	deliveryPersonID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDeliveryCommand(
	caller access.Caller,
	orderNumber string,
	deliveryPersonID kernel.UUID,
) (AssignDeliveryCommand, error) {
	cmd := AssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setOrderNumber(orderNumber),
		cmd.setDeliveryPersonID(deliveryPersonID),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

func (c AssignDeliveryCommand) Caller() access.Caller {
	return c.caller
}

func (c AssignDeliveryCommand) OrderNumber() string {
	return c.orderNumber
}

func (c AssignDeliveryCommand) DeliveryPersonID() kernel.UUID {
	return c.deliveryPersonID
}

func (c *AssignDeliveryCommand) setCaller(caller access.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *AssignDeliveryCommand) setOrderNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order_number")
	}
	c.orderNumber = number
	return nil
}

func (c *AssignDeliveryCommand) setDeliveryPersonID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery_person", err)
	}
	c.deliveryPersonID = id
	return nil
}
