package access

import (
	"errors"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/pkg/guard"
)

var ErrCallerIsNotConstructed = errors.New("Caller must be created via NewCaller")

// Caller is the authenticated identity on whose behalf an operation runs.
type Caller struct {
	userID kernel.UUID
	role   Role
	guard  guard.ConstructorGuard
}

func NewCaller(userID kernel.UUID, role Role) (Caller, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Caller{}, err
	}
	return Caller{
		userID: userID,
		role:   role,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c Caller) UserID() kernel.UUID {
	return c.userID
}

func (c Caller) Role() Role {
	return c.role
}

// Owns reports whether the resource owned by ownerID belongs to the caller.
func (c Caller) Owns(ownerID kernel.UUID) bool {
	return c.userID.IsEqual(ownerID)
}

func (c Caller) Validate() error {
	return c.guard.Validate(ErrCallerIsNotConstructed)
}
