package queries

import (
	"errors"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/pkg/guard"
)

var (
	ErrListActiveDeliveryPersonsQueryIsNotConstructed = errors.New(
		"ListActiveDeliveryPersonsQuery must be created via NewListActiveDeliveryPersonsQuery constructor",
	)
)

// ListActiveDeliveryPersonsQuery lists the users an admin can assign deliveries to.
type ListActiveDeliveryPersonsQuery struct {
	caller access.Caller
	guard  guard.ConstructorGuard
}

func NewListActiveDeliveryPersonsQuery(caller access.Caller) (ListActiveDeliveryPersonsQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListActiveDeliveryPersonsQuery{}, err
	}
	return ListActiveDeliveryPersonsQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q ListActiveDeliveryPersonsQuery) Caller() access.Caller {
	return q.caller
}

func (q ListActiveDeliveryPersonsQuery) Validate() error {
	return q.guard.Validate(ErrListActiveDeliveryPersonsQueryIsNotConstructed)
}

// DeliveryPersonResponse is an active user with the delivery role.
type DeliveryPersonResponse struct {
	ID    kernel.UUID
	Name  string
	Email string
}
