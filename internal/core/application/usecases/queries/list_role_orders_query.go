package queries

import (
	"errors"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/pkg/guard"
)

var (
	ErrListRoleOrdersQueryIsNotConstructed = errors.New(
		"ListRoleOrdersQuery must be created via NewListRoleOrdersQuery constructor",
	)
)

// ListRoleOrdersQuery lists the orders visible to the caller's role.
type ListRoleOrdersQuery struct {
	caller access.Caller
	guard  guard.ConstructorGuard
}

func NewListRoleOrdersQuery(caller access.Caller) (ListRoleOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListRoleOrdersQuery{}, err
	}
	return ListRoleOrdersQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRoleOrdersQuery) Caller() access.Caller {
	return q.caller
}

func (q ListRoleOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListRoleOrdersQueryIsNotConstructed)
}
