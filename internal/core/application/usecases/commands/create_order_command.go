package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"
	"optistore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderLine is one requested item of a new order.
type OrderLine struct {
	ProductID      kernel.UUID
	Quantity       int
	Price          decimal.Decimal
	LensOption     json.RawMessage
	PrescriptionID *kernel.UUID
}

// validatedLine is an OrderLine whose price has been checked.
type validatedLine struct {
	productID      kernel.UUID
	quantity       int
	price          kernel.Money
	lensOption     json.RawMessage
	prescriptionID *kernel.UUID
}

// CreateOrderCommand represents a request to place a new order on behalf of the caller.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(caller, "ORD-1001", "home", "", decimal.RequireFromString("149.90"),
//	    []OrderLine{{ProductID: frameID, Quantity: 1, Price: decimal.RequireFromString("149.90")}},
//	    order.BillingDetails{...})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	caller         access.Caller
	orderNumber    string
	deliveryOption order.DeliveryOption
	paymentMethod  string
	totalPrice     kernel.Money
	lines          []validatedLine
	billing        order.Billing

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field and reports all problems at once.
// An empty paymentMethod selects the default payment method.
func NewCreateOrderCommand(
	caller access.Caller,
	orderNumber string,
	deliveryOption string,
	paymentMethod string,
	totalPrice decimal.Decimal,
	lines []OrderLine,
	billing order.BillingDetails,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderNumber:   orderNumber,
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setOrderNumber(orderNumber),
		cmd.setDeliveryOption(deliveryOption),
		cmd.setTotalPrice(totalPrice),
		cmd.setLines(lines),
		cmd.setBilling(billing),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Caller() access.Caller {
	return c.caller
}

func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

func (c CreateOrderCommand) DeliveryOption() order.DeliveryOption {
	return c.deliveryOption
}

func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c CreateOrderCommand) TotalPrice() kernel.Money {
	return c.totalPrice
}

func (c CreateOrderCommand) Billing() order.Billing {
	return c.billing
}

func (c *CreateOrderCommand) setCaller(caller access.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order_number")
	}
	c.orderNumber = number
	return nil
}

func (c *CreateOrderCommand) setDeliveryOption(raw string) error {
	opt, err := order.ParseDeliveryOption(raw)
	if err != nil {
		return err
	}
	c.deliveryOption = opt
	return nil
}

func (c *CreateOrderCommand) setTotalPrice(amount decimal.Decimal) error {
	m, err := kernel.NewMoney(amount)
	if err != nil {
		return fmt.Errorf("total_price: %w", err)
	}
	c.totalPrice = m
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("at least one item is required"))
	}

	validated := make([]validatedLine, 0, len(lines))
	errList := make([]error, 0)
	for i, l := range lines {
		price, err := kernel.NewMoney(l.Price)
		if err != nil {
			errList = append(errList, fmt.Errorf("items[%d].price: %w", i, err))
		}
		if l.Quantity < 1 {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i,
				errs.NewValueIsOutOfRangeError("quantity", l.Quantity, 1, "unbounded")))
		}
		if err = l.ProductID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("items[%d].product_id: %w", i, err))
		}
		validated = append(validated, validatedLine{
			productID:      l.ProductID,
			quantity:       l.Quantity,
			price:          price,
			lensOption:     l.LensOption,
			prescriptionID: l.PrescriptionID,
		})
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.lines = validated
	return nil
}

func (c *CreateOrderCommand) setBilling(details order.BillingDetails) error {
	b, err := order.NewBilling(details)
	if err != nil {
		return err
	}
	c.billing = b
	return nil
}
