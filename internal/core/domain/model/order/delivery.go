package order

import (
	"time"

	"optistore/internal/core/domain/model/kernel"
)

// Delivery records which delivery person carries the order. It is written once.
type Delivery struct {
	personID   kernel.UUID
	assignedAt time.Time
}

func RestoreDelivery(personID kernel.UUID, assignedAt time.Time) (*Delivery, error) {
	if err := personID.Validate(); err != nil {
		return nil, err
	}
	return &Delivery{personID: personID, assignedAt: assignedAt}, nil
}

func (d *Delivery) PersonID() kernel.UUID {
	return d.personID
}

func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}
