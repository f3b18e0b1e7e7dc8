package queries

import (
	"errors"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/pkg/errs"
	"optistore/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads one of the caller's orders by its number.
type GetOrderQuery struct {
	caller      access.Caller
	orderNumber string
	guard       guard.ConstructorGuard
}

func NewGetOrderQuery(caller access.Caller, orderNumber string) (GetOrderQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if orderNumber == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order_number")
	}
	return GetOrderQuery{
		caller:      caller,
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Caller() access.Caller {
	return q.caller
}

func (q GetOrderQuery) OrderNumber() string {
	return q.orderNumber
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}
