package access

import (
	"fmt"
	"slices"

	"optistore/internal/pkg/errs"
)

// Role is the coarse-grained kind of user an identity belongs to.
type Role string

const (
	Admin        Role = "admin"
	Doctor       Role = "doctor"
	Customer     Role = "customer"
	Delivery     Role = "delivery"
	Manufacturer Role = "manufacturer"
)

// Roles lists every known role in a stable order.
func Roles() []Role {
	return []Role{Admin, Doctor, Customer, Delivery, Manufacturer}
}

// ParseRole converts a raw claim or column value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if !slices.Contains(Roles(), r) {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}
