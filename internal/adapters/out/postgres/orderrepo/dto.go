// Package orderrepo persists the order aggregate: the order row, its items, the
// billing snapshot and the optional delivery, each in its own table.
package orderrepo

import (
	"encoding/json"
	"time"

	"optistore/internal/adapters/out/postgres/prescriptionrepo"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// order_number carries the unique index that rejects duplicate numbers.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber     string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_orders_order_number"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null;default:card"`
	DeliveryOption  string          `gorm:"type:varchar(10);not null"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	StatusUpdatedAt time.Time       `gorm:"not null"`
	Items           []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Billing         *BillingInfoDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Delivery        *DeliveryDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the lines in the order they were placed.
type OrderItemDTO struct {
	ID             uuid.UUID                         `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID                         `gorm:"type:uuid;not null;index"`
	Position       int                               `gorm:"type:int;not null"`
	ProductID      uuid.UUID                         `gorm:"type:uuid;not null;index"`
	ProductName    string                            `gorm:"type:varchar(255);not null"`
	Quantity       int                               `gorm:"type:int;not null"`
	Price          decimal.Decimal                   `gorm:"type:numeric(10,2);not null"`
	LensOption     datatypes.JSON
	PrescriptionID *uuid.UUID                        `gorm:"type:uuid;index"`
	Prescription   *prescriptionrepo.PrescriptionDTO `gorm:"foreignKey:PrescriptionID;constraint:OnDelete:SET NULL"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// BillingInfoDTO is the billing snapshot, exactly one per order.
type BillingInfoDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Email    string    `gorm:"type:varchar(254);not null"`
	Phone    string    `gorm:"type:varchar(20);not null"`
	Address1 string    `gorm:"type:varchar(255);not null"`
	Address2 string    `gorm:"type:varchar(255);not null;default:''"`
	City     string    `gorm:"type:varchar(100);not null"`
	State    string    `gorm:"type:varchar(100);not null"`
	Country  string    `gorm:"type:varchar(100);not null"`
	ZipCode  string    `gorm:"type:varchar(20);not null"`
}

func (BillingInfoDTO) TableName() string {
	return "billing_infos"
}

// DeliveryDTO is the delivery assignment. The unique order_id index backs the
// at-most-one-delivery rule when two assignments race.
type DeliveryDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_deliveries_order_id"`
	DeliveryPersonID uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedAt       time.Time `gorm:"not null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// Models lists the tables owned by this package in migration order.
func Models() []any {
	return []any{&OrderDTO{}, &OrderItemDTO{}, &BillingInfoDTO{}, &DeliveryDTO{}}
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		var prescriptionID *uuid.UUID
		if id := item.PrescriptionID(); id != nil {
			raw := id.Bytes()
			prescriptionID = &raw
		}

		var lensOption datatypes.JSON
		if len(item.LensOption()) > 0 {
			lensOption = datatypes.JSON(item.LensOption())
		}

		items = append(items, OrderItemDTO{
			ID:             item.ID().Bytes(),
			OrderID:        orderID,
			Position:       i,
			ProductID:      item.ProductID().Bytes(),
			ProductName:    item.ProductName(),
			Quantity:       item.Quantity(),
			Price:          item.Price().Amount(),
			LensOption:     lensOption,
			PrescriptionID: prescriptionID,
		})
	}

	b := o.Billing()
	dto := OrderDTO{
		ID:              orderID,
		OrderNumber:     o.Number(),
		UserID:          o.OwnerID().Bytes(),
		Status:          string(o.Status()),
		PaymentMethod:   o.PaymentMethod(),
		DeliveryOption:  string(o.DeliveryOption()),
		TotalPrice:      o.TotalPrice().Amount(),
		CreatedAt:       o.CreatedAt(),
		StatusUpdatedAt: o.StatusUpdatedAt(),
		Items:           items,
		Billing: &BillingInfoDTO{
			ID:       uuid.New(),
			OrderID:  orderID,
			Name:     b.Name(),
			Email:    b.Email(),
			Phone:    b.Phone(),
			Address1: b.Address1(),
			Address2: b.Address2(),
			City:     b.City(),
			State:    b.State(),
			Country:  b.Country(),
			ZipCode:  b.ZipCode(),
		},
	}

	if d := o.Delivery(); d != nil {
		dto.Delivery = deliveryFromDomain(orderID, d)
	}

	return dto
}

func deliveryFromDomain(orderID uuid.UUID, d *order.Delivery) *DeliveryDTO {
	return &DeliveryDTO{
		ID:               uuid.New(),
		OrderID:          orderID,
		DeliveryPersonID: d.PersonID().Bytes(),
		AssignedAt:       d.AssignedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	option, err := order.ParseDeliveryOption(dto.DeliveryOption)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	if dto.Billing == nil {
		return nil, order.ErrBillingIsNotConstructed
	}
	billing, err := order.NewBilling(order.BillingDetails{
		Name:     dto.Billing.Name,
		Email:    dto.Billing.Email,
		Phone:    dto.Billing.Phone,
		Address1: dto.Billing.Address1,
		Address2: dto.Billing.Address2,
		City:     dto.Billing.City,
		State:    dto.Billing.State,
		Country:  dto.Billing.Country,
		ZipCode:  dto.Billing.ZipCode,
	})
	if err != nil {
		return nil, err
	}

	var delivery *order.Delivery
	if dto.Delivery != nil {
		delivery, err = order.RestoreDelivery(kernel.UUIDFromGoogle(dto.Delivery.DeliveryPersonID), dto.Delivery.AssignedAt)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(order.State{
		ID:              kernel.UUIDFromGoogle(dto.ID),
		Number:          dto.OrderNumber,
		OwnerID:         kernel.UUIDFromGoogle(dto.UserID),
		Status:          status,
		PaymentMethod:   dto.PaymentMethod,
		DeliveryOption:  option,
		TotalPrice:      total,
		CreatedAt:       dto.CreatedAt,
		StatusUpdatedAt: dto.StatusUpdatedAt,
		Items:           items,
		Billing:         billing,
		Delivery:        delivery,
	})
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.Item{}, err
	}

	var prescriptionID *kernel.UUID
	if dto.PrescriptionID != nil {
		id := kernel.UUIDFromGoogle(*dto.PrescriptionID)
		prescriptionID = &id
	}

	var lensOption json.RawMessage
	if len(dto.LensOption) > 0 && string(dto.LensOption) != "null" {
		lensOption = json.RawMessage(dto.LensOption)
	}

	return order.RestoreItem(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.ProductID),
		dto.ProductName,
		dto.Quantity,
		price,
		lensOption,
		prescriptionID,
	)
}
