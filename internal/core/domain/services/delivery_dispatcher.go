package services

import (
	"errors"
	"time"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/order"
)

// ErrDeliveryPersonNotFound is returned when the chosen delivery person is missing.
var ErrDeliveryPersonNotFound = errors.New("delivery person not found")

// DeliveryDispatcher hands an order over to a delivery person.
//
// Business rules:
//   - The order must be valid and not yet handed over
//   - The person must be an active user with the delivery role
//   - A successful hand-over ships the order
//
// Example usage:
//
//	dispatcher := services.NewDeliveryDispatcher()
//	if err := dispatcher.Dispatch(o, person, time.Now().UTC()); err != nil {
//	    return err
//	}
type DeliveryDispatcher struct{}

func NewDeliveryDispatcher() DeliveryDispatcher {
	return DeliveryDispatcher{}
}

// Dispatch assigns person to o at the given time.
func (d DeliveryDispatcher) Dispatch(o *order.Order, person *access.Account, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if person == nil {
		return ErrDeliveryPersonNotFound
	}
	if err := person.Validate(); err != nil {
		return err
	}

	return o.AssignDelivery(person, at)
}
