package queries

import (
	"errors"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/pkg/guard"
)

var (
	ErrListOwnOrdersQueryIsNotConstructed = errors.New(
		"ListOwnOrdersQuery must be created via NewListOwnOrdersQuery constructor",
	)
)

// ListOwnOrdersQuery lists the orders placed by the caller.
//
// Example:
//
//	query, err := NewListOwnOrdersQuery(caller)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOwnOrdersQuery struct {
	caller access.Caller
	guard  guard.ConstructorGuard
}

func NewListOwnOrdersQuery(caller access.Caller) (ListOwnOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListOwnOrdersQuery{}, err
	}
	return ListOwnOrdersQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOwnOrdersQuery) Caller() access.Caller {
	return q.caller
}

func (q ListOwnOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOwnOrdersQueryIsNotConstructed)
}
