package commands

import (
	"errors"

	"optistore/internal/pkg/errs"
	"optistore/internal/pkg/guard"
)

var (
	ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
		"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
	)
)

const maxDispatchBatchSize = 500

// DispatchNotificationsCommand sends up to batchSize pending outbox messages.
type DispatchNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchNotificationsCommand(batchSize int) (DispatchNotificationsCommand, error) {
	if batchSize < 1 || batchSize > maxDispatchBatchSize {
		return DispatchNotificationsCommand{}, errs.NewValueIsOutOfRangeError(
			"batch_size", batchSize, 1, maxDispatchBatchSize)
	}
	return DispatchNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) BatchSize() int {
	return c.batchSize
}
