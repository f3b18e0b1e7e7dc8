package order

import (
	"time"

	"optistore/internal/core/domain/model/kernel"
)

const (
	CreatedEventName          = "order.created"
	StatusChangedEventName    = "order.status_changed"
	DeliveryAssignedEventName = "order.delivery_assigned"
)

// Recipient is who a notification about the order is addressed to.
type Recipient struct {
	Name  string
	Email string
}

// CreatedEvent is raised once an order has been placed.
type CreatedEvent struct {
	kernel.BaseEvent
	OrderID     kernel.UUID
	OrderNumber string
	TotalPrice  string
	ItemCount   int
	Customer    Recipient
}

// StatusChangedEvent is raised on every status change, including the forced
// change to shipped when a delivery is assigned.
type StatusChangedEvent struct {
	kernel.BaseEvent
	OrderID     kernel.UUID
	OrderNumber string
	From        Status
	To          Status
	Customer    Recipient
}

// DeliveryAssignedEvent is raised when a delivery person is attached to the order.
type DeliveryAssignedEvent struct {
	kernel.BaseEvent
	OrderID        kernel.UUID
	OrderNumber    string
	DeliveryPerson Recipient
	Customer       Recipient
	Address        string
}

func newCreatedEvent(o *Order, at time.Time) CreatedEvent {
	return CreatedEvent{
		BaseEvent:   kernel.NewBaseEvent(CreatedEventName, at),
		OrderID:     o.id,
		OrderNumber: o.number,
		TotalPrice:  o.totalPrice.String(),
		ItemCount:   len(o.items),
		Customer:    o.recipient(),
	}
}

func newStatusChangedEvent(o *Order, from Status, at time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent:   kernel.NewBaseEvent(StatusChangedEventName, at),
		OrderID:     o.id,
		OrderNumber: o.number,
		From:        from,
		To:          o.status,
		Customer:    o.recipient(),
	}
}

func newDeliveryAssignedEvent(o *Order, person Recipient, at time.Time) DeliveryAssignedEvent {
	return DeliveryAssignedEvent{
		BaseEvent:      kernel.NewBaseEvent(DeliveryAssignedEventName, at),
		OrderID:        o.id,
		OrderNumber:    o.number,
		DeliveryPerson: person,
		Customer:       o.recipient(),
		Address:        o.billing.ShippingAddress(),
	}
}
