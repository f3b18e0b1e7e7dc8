package queries

import (
	"errors"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/pkg/guard"
)

var (
	ErrPendingOrderCountQueryIsNotConstructed = errors.New(
		"PendingOrderCountQuery must be created via NewPendingOrderCountQuery constructor",
	)
)

// PendingOrderCountQuery counts orders still waiting to be processed.
type PendingOrderCountQuery struct {
	caller access.Caller
	guard  guard.ConstructorGuard
}

func NewPendingOrderCountQuery(caller access.Caller) (PendingOrderCountQuery, error) {
	if err := caller.Validate(); err != nil {
		return PendingOrderCountQuery{}, err
	}
	return PendingOrderCountQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q PendingOrderCountQuery) Caller() access.Caller {
	return q.caller
}

func (q PendingOrderCountQuery) Validate() error {
	return q.guard.Validate(ErrPendingOrderCountQueryIsNotConstructed)
}
