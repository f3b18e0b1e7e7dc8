package notification

import (
	"fmt"
	"strconv"
	"time"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"
)

// Template keys shared by the composer and the email renderer.
const (
	KeyOrderNumber    = "order_number"
	KeyCustomerName   = "customer_name"
	KeyTotalPrice     = "total_price"
	KeyItemCount      = "item_count"
	KeyPreviousStatus = "previous_status"
	KeyStatus         = "status"
	KeyDeliveryPerson = "delivery_person"
	KeyAddress        = "address"
)

// Compose turns an order event into the messages it should produce.
// Events that nobody is notified about yield no messages.
func Compose(event kernel.DomainEvent, now time.Time) ([]*Message, error) {
	switch e := event.(type) {
	case order.CreatedEvent:
		m, err := NewMessage(
			OrderConfirmation,
			e.Customer.Name,
			e.Customer.Email,
			fmt.Sprintf("Order Confirmation - %s", e.OrderNumber),
			map[string]string{
				KeyOrderNumber:  e.OrderNumber,
				KeyCustomerName: e.Customer.Name,
				KeyTotalPrice:   e.TotalPrice,
				KeyItemCount:    strconv.Itoa(e.ItemCount),
			},
			now,
		)
		return single(m, err)

	case order.StatusChangedEvent:
		m, err := NewMessage(
			StatusUpdate,
			e.Customer.Name,
			e.Customer.Email,
			fmt.Sprintf("Order Status Updated - %s", e.OrderNumber),
			map[string]string{
				KeyOrderNumber:    e.OrderNumber,
				KeyCustomerName:   e.Customer.Name,
				KeyPreviousStatus: e.From.String(),
				KeyStatus:         e.To.String(),
			},
			now,
		)
		return single(m, err)

	case order.DeliveryAssignedEvent:
		m, err := NewMessage(
			DeliveryAssignment,
			e.DeliveryPerson.Name,
			e.DeliveryPerson.Email,
			fmt.Sprintf("New Delivery Assignment - %s", e.OrderNumber),
			map[string]string{
				KeyOrderNumber:    e.OrderNumber,
				KeyCustomerName:   e.Customer.Name,
				KeyDeliveryPerson: e.DeliveryPerson.Name,
				KeyAddress:        e.Address,
			},
			now,
		)
		return single(m, err)
	}

	return nil, nil
}

func single(m *Message, err error) ([]*Message, error) {
	if err != nil {
		return nil, err
	}
	return []*Message{m}, nil
}
