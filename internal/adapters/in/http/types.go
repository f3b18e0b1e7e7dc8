package http

import (
	"encoding/json"
	"time"

	"optistore/internal/core/application/usecases/queries"
	"optistore/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type NewOrder struct {
	OrderNumber    string          `json:"order_number"`
	DeliveryOption string          `json:"delivery_option"`
	PaymentMethod  string          `json:"payment_method"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Items          []NewOrderItem  `json:"items"`
	Billing        Billing         `json:"billing"`
}

type NewOrderItem struct {
	ProductID      string          `json:"product_id"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	LensOption     json.RawMessage `json:"lens_option,omitempty"`
	PrescriptionID *string         `json:"prescription_id,omitempty"`
}

type Billing struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address1 string  `json:"address1"`
	Address2 *string `json:"address2"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Country  string  `json:"country"`
	ZipCode  string  `json:"zip_code"`
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	OrderNumber     string      `json:"order_number"`
	UserID          uuid.UUID   `json:"user_id"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryOption  string      `json:"delivery_option"`
	TotalPrice      string      `json:"total_price"`
	CreatedAt       time.Time   `json:"created_at"`
	StatusUpdatedAt time.Time   `json:"status_updated_at"`
	Items           []OrderItem `json:"items"`
	Billing         Billing     `json:"billing"`
	Delivery        *Delivery   `json:"delivery"`
}

type OrderItem struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	Price          string          `json:"price"`
	LensOption     json.RawMessage `json:"lens_option"`
	PrescriptionID *uuid.UUID      `json:"prescription_id"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type StatusChanged struct {
	Message         string    `json:"message"`
	OrderNumber     string    `json:"order_number"`
	Status          string    `json:"status"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
}

type NewDelivery struct {
	OrderNumber      string `json:"order_number"`
	DeliveryPersonID string `json:"delivery_person_id"`
}

type Delivery struct {
	OrderNumber      string    `json:"order_number,omitempty"`
	DeliveryPersonID uuid.UUID `json:"delivery_person_id"`
	AssignedAt       time.Time `json:"assigned_at"`
}

type DeliveryPerson struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type PendingCount struct {
	PendingOrders int64 `json:"pending_orders"`
}

type TotalSales struct {
	Current string `json:"current"`
	Prior   string `json:"prior"`
}

type MonthlyRevenue struct {
	CurrentMonth  string `json:"current_month"`
	PreviousMonth string `json:"previous_month"`
}

type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue string `json:"revenue"`
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orderFromView(v queries.OrderResponse) Order {
	items := make([]OrderItem, len(v.Items))
	for i, it := range v.Items {
		items[i] = OrderItem{
			ID:          it.ID.Bytes(),
			ProductID:   it.ProductID.Bytes(),
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       amount(it.Price),
			LensOption:  it.LensOption,
		}
		if it.PrescriptionID != nil {
			pid := it.PrescriptionID.Bytes()
			items[i].PrescriptionID = &pid
		}
	}

	resp := Order{
		ID:              v.ID.Bytes(),
		OrderNumber:     v.OrderNumber,
		UserID:          v.OwnerID.Bytes(),
		Status:          v.Status,
		PaymentMethod:   v.PaymentMethod,
		DeliveryOption:  v.DeliveryOption,
		TotalPrice:      amount(v.TotalPrice),
		CreatedAt:       v.CreatedAt,
		StatusUpdatedAt: v.StatusUpdatedAt,
		Items:           items,
		Billing: Billing{
			Name:     v.Billing.Name,
			Email:    v.Billing.Email,
			Phone:    v.Billing.Phone,
			Address1: v.Billing.Address1,
			Address2: optionalString(v.Billing.Address2),
			City:     v.Billing.City,
			State:    v.Billing.State,
			Country:  v.Billing.Country,
			ZipCode:  v.Billing.ZipCode,
		},
	}
	if v.Delivery != nil {
		resp.Delivery = &Delivery{
			DeliveryPersonID: v.Delivery.DeliveryPersonID.Bytes(),
			AssignedAt:       v.Delivery.AssignedAt,
		}
	}
	return resp
}

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, it := range o.Items() {
		item := OrderItem{
			ID:          it.ID().Bytes(),
			ProductID:   it.ProductID().Bytes(),
			ProductName: it.ProductName(),
			Quantity:    it.Quantity(),
			Price:       amount(it.Price().Amount()),
			LensOption:  it.LensOption(),
		}
		if it.PrescriptionID() != nil {
			pid := it.PrescriptionID().Bytes()
			item.PrescriptionID = &pid
		}
		items = append(items, item)
	}

	b := o.Billing()
	resp := Order{
		ID:              o.ID().Bytes(),
		OrderNumber:     o.Number(),
		UserID:          o.OwnerID().Bytes(),
		Status:          o.Status().String(),
		PaymentMethod:   o.PaymentMethod(),
		DeliveryOption:  o.DeliveryOption().String(),
		TotalPrice:      amount(o.TotalPrice().Amount()),
		CreatedAt:       o.CreatedAt(),
		StatusUpdatedAt: o.StatusUpdatedAt(),
		Items:           items,
		Billing: Billing{
			Name:     b.Name(),
			Email:    b.Email(),
			Phone:    b.Phone(),
			Address1: b.Address1(),
			Address2: optionalString(b.Address2()),
			City:     b.City(),
			State:    b.State(),
			Country:  b.Country(),
			ZipCode:  b.ZipCode(),
		},
	}
	if d := o.Delivery(); d != nil {
		resp.Delivery = &Delivery{
			DeliveryPersonID: d.PersonID().Bytes(),
			AssignedAt:       d.AssignedAt(),
		}
	}
	return resp
}
