package access

import (
	"errors"
	"fmt"
	"strings"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/pkg/errs"
	"optistore/internal/pkg/guard"
)

var ErrAccountIsNotConstructed = errors.New("Account must be created via RestoreAccount")

// Account is the read-only view of a user that the order workflow needs.
// Accounts are owned by the identity service and are never written here.
type Account struct {
	id     kernel.UUID
	name   string
	email  string
	role   Role
	active bool
	guard  guard.ConstructorGuard
}

// RestoreAccount rebuilds an account read from the user directory.
func RestoreAccount(id kernel.UUID, name, email string, role Role, active bool) (*Account, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	return &Account{
		id:     id,
		name:   name,
		email:  email,
		role:   role,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (a *Account) ID() kernel.UUID {
	return a.id
}

// Name falls back to the email address when the user never set a display name.
func (a *Account) Name() string {
	if strings.TrimSpace(a.name) == "" {
		return a.email
	}
	return a.name
}

func (a *Account) Email() string {
	return a.email
}

func (a *Account) Role() Role {
	return a.role
}

func (a *Account) IsActive() bool {
	return a.active
}

// ValidateDeliveryPerson checks that the account may receive delivery assignments.
func (a *Account) ValidateDeliveryPerson() error {
	if a.role != Delivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_person",
			fmt.Errorf("user %s has role %s, not %s", a.id, a.role, Delivery),
		)
	}
	if !a.active {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_person",
			fmt.Errorf("user %s is not active", a.id),
		)
	}
	return nil
}

func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}
