package order

import (
	"errors"
	"fmt"
	"time"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDeliveryAlreadyAssigned is the cause returned when a second delivery is assigned.
	ErrDeliveryAlreadyAssigned = errors.New("delivery already assigned")

	// ErrDuplicateOrderNumber is the cause returned when an order number is already taken.
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

// Order is the aggregate root of the order workflow. It owns its items, the billing
// snapshot and the optional delivery assignment, and records domain events for every
// state change so that notifications can be sent after the transaction commits.
//
// Order follows these invariants:
//   - The order number is 1..20 characters and never changes
//   - There is at least one item and the item set never changes
//   - statusUpdatedAt moves forward on every status change
//   - A delivery is assigned at most once and forces the shipped status
type Order struct {
	id              kernel.UUID
	number          string
	ownerID         kernel.UUID
	status          Status
	paymentMethod   string
	deliveryOption  DeliveryOption
	totalPrice      kernel.Money
	createdAt       time.Time
	statusUpdatedAt time.Time
	items           []Item
	billing         Billing
	delivery        *Delivery

	events        []kernel.DomainEvent
	isConstructed bool
}

// NewOrder places a new order in the pending status.
//
// An empty paymentMethod falls back to DefaultPaymentMethod. totalPrice is taken as
// given and is not compared with the sum of the item prices.
//
// Example:
//
//	item, _ := order.NewItem(productID, "Aviator frame", 1, kernel.MustMoney("120.00"), nil, nil)
//	billing, _ := order.NewBilling(details)
//	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1001", callerID, "", order.HomeDelivery,
//	    kernel.MustMoney("120.00"), []order.Item{item}, billing, time.Now().UTC())
func NewOrder(
	id kernel.UUID,
	number string,
	ownerID kernel.UUID,
	paymentMethod string,
	deliveryOption DeliveryOption,
	totalPrice kernel.Money,
	items []Item,
	billing Billing,
	now time.Time,
) (*Order, error) {
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	o, err := RestoreOrder(State{
		ID:              id,
		Number:          number,
		OwnerID:         ownerID,
		Status:          Pending,
		PaymentMethod:   paymentMethod,
		DeliveryOption:  deliveryOption,
		TotalPrice:      totalPrice,
		CreatedAt:       now,
		StatusUpdatedAt: now,
		Items:           items,
		Billing:         billing,
	})
	if err != nil {
		return nil, err
	}

	o.raise(newCreatedEvent(o, now))
	return o, nil
}

// State is the full persisted state of an order, used to rebuild it from storage.
type State struct {
	ID              kernel.UUID
	Number          string
	OwnerID         kernel.UUID
	Status          Status
	PaymentMethod   string
	DeliveryOption  DeliveryOption
	TotalPrice      kernel.Money
	CreatedAt       time.Time
	StatusUpdatedAt time.Time
	Items           []Item
	Billing         Billing
	Delivery        *Delivery
}

// RestoreOrder rebuilds an order from storage without raising events.
func RestoreOrder(s State) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		requireText("order_number", s.Number, maxOrderNumberLength),
		s.OwnerID.Validate(),
		s.Status.Validate(),
		requireText("payment_method", s.PaymentMethod, maxPaymentMethodLength),
		s.DeliveryOption.Validate(),
		s.TotalPrice.Validate(),
		validateItems(s.Items),
		s.Billing.Validate(),
	); err != nil {
		return nil, err
	}

	items := make([]Item, len(s.Items))
	copy(items, s.Items)

	return &Order{
		id:              s.ID,
		number:          s.Number,
		ownerID:         s.OwnerID,
		status:          s.Status,
		paymentMethod:   s.PaymentMethod,
		deliveryOption:  s.DeliveryOption,
		totalPrice:      s.TotalPrice,
		createdAt:       s.CreatedAt,
		statusUpdatedAt: s.StatusUpdatedAt,
		items:           items,
		billing:         s.Billing,
		delivery:        s.Delivery,
		isConstructed:   true,
	}, nil
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("at least one item is required"))
	}
	errList := make([]error, 0, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
		}
	}
	return errors.Join(errList...)
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

func (o *Order) DeliveryOption() DeliveryOption {
	return o.deliveryOption
}

func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) StatusUpdatedAt() time.Time {
	return o.statusUpdatedAt
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Billing() Billing {
	return o.billing
}

// Delivery returns the delivery assignment, or nil when none has been made.
func (o *Order) Delivery() *Delivery {
	return o.delivery
}

// ChangeStatus moves the order to next and stamps the change time.
//
// Returns an error matching ErrInvalidStatus when next is not a known status.
// Changing to the current status is allowed and still stamps the time.
func (o *Order) ChangeStatus(next Status, at time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(next); err != nil {
		return err
	}

	from := o.status
	o.status = next
	o.statusUpdatedAt = at
	o.raise(newStatusChangedEvent(o, from, at))
	return nil
}

// AssignDelivery attaches a delivery person and forces the shipped status.
//
// This method enforces the following business rules:
//   - The person must be an active user with the delivery role
//   - The order must not already have a delivery
//
// Two events are raised: a status change for the customer and an assignment
// notice for the delivery person.
func (o *Order) AssignDelivery(person *access.Account, at time.Time) error {
	if err := person.Validate(); err != nil {
		return err
	}
	if err := person.ValidateDeliveryPerson(); err != nil {
		return err
	}
	if o.delivery != nil {
		return errs.NewObjectAlreadyExistsErrorWithCause("delivery", o.number, ErrDeliveryAlreadyAssigned)
	}

	from := o.status
	o.delivery = &Delivery{personID: person.ID(), assignedAt: at}
	o.status = Shipped
	o.statusUpdatedAt = at

	o.raise(newStatusChangedEvent(o, from, at))
	o.raise(newDeliveryAssignedEvent(o, Recipient{Name: person.Name(), Email: person.Email()}, at))
	return nil
}

// DomainEvents returns the events raised since the order was loaded or created.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) raise(e kernel.DomainEvent) {
	o.events = append(o.events, e)
}

func (o *Order) recipient() Recipient {
	return Recipient{Name: o.billing.Name(), Email: o.billing.Email()}
}
