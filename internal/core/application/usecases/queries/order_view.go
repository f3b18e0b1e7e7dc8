package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"optistore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderResponse is the read model of an order with its items, billing and delivery.
type OrderResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	OwnerID         kernel.UUID
	Status          string
	PaymentMethod   string
	DeliveryOption  string
	TotalPrice      decimal.Decimal
	CreatedAt       time.Time
	StatusUpdatedAt time.Time
	Items           []OrderItemResponse
	Billing         BillingResponse
	Delivery        *DeliveryResponse
}

type OrderItemResponse struct {
	ID             kernel.UUID
	ProductID      kernel.UUID
	ProductName    string
	Quantity       int
	Price          decimal.Decimal
	LensOption     json.RawMessage
	PrescriptionID *kernel.UUID
}

type BillingResponse struct {
	Name     string
	Email    string
	Phone    string
	Address1 string
	Address2 string
	City     string
	State    string
	Country  string
	ZipCode  string
}

type DeliveryResponse struct {
	DeliveryPersonID kernel.UUID
	AssignedAt       time.Time
}

const orderViewSelect = `
	SELECT
		o.id,
		o.order_number,
		o.user_id,
		o.status,
		o.payment_method,
		o.delivery_option,
		o.total_price,
		o.created_at,
		o.status_updated_at,
		b.name,
		b.email,
		b.phone,
		b.address1,
		b.address2,
		b.city,
		b.state,
		b.country,
		b.zip_code,
		d.delivery_person_id,
		d.assigned_at
	FROM orders o
	JOIN billing_infos b ON b.order_id = o.id
	LEFT JOIN deliveries d ON d.order_id = o.id
`

// loadOrders reads orders matching where (a SQL predicate over alias o) in the given
// order and attaches their items.
func loadOrders(ctx context.Context, db *gorm.DB, where, orderBy string, args ...any) ([]OrderResponse, error) {
	query := orderViewSelect
	if where != "" {
		query += " WHERE " + where
	}
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}

	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			resp             OrderResponse
			id, ownerID      uuid.UUID
			deliveryPersonID uuid.NullUUID
			assignedAt       sql.NullTime
		)

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&ownerID,
			&resp.Status,
			&resp.PaymentMethod,
			&resp.DeliveryOption,
			&resp.TotalPrice,
			&resp.CreatedAt,
			&resp.StatusUpdatedAt,
			&resp.Billing.Name,
			&resp.Billing.Email,
			&resp.Billing.Phone,
			&resp.Billing.Address1,
			&resp.Billing.Address2,
			&resp.Billing.City,
			&resp.Billing.State,
			&resp.Billing.Country,
			&resp.Billing.ZipCode,
			&deliveryPersonID,
			&assignedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID = kernel.UUIDFromGoogle(id)
		resp.OwnerID = kernel.UUIDFromGoogle(ownerID)
		resp.TotalPrice = resp.TotalPrice.Round(2)
		resp.Items = make([]OrderItemResponse, 0)
		if deliveryPersonID.Valid {
			resp.Delivery = &DeliveryResponse{
				DeliveryPersonID: kernel.UUIDFromGoogle(deliveryPersonID.UUID),
				AssignedAt:       assignedAt.Time,
			}
		}

		index[id] = len(orders)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err = attachItems(ctx, db, orders, index); err != nil {
		return nil, err
	}
	return orders, nil
}

func attachItems(ctx context.Context, db *gorm.DB, orders []OrderResponse, index map[uuid.UUID]int) error {
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id.String())
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			id,
			product_id,
			product_name,
			quantity,
			price,
			lens_option,
			prescription_id
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item                   OrderItemResponse
			orderID, id, productID uuid.UUID
			lensOption             []byte
			prescriptionID         uuid.NullUUID
		)

		err = rows.Scan(
			&orderID,
			&id,
			&productID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
			&lensOption,
			&prescriptionID,
		)
		if err != nil {
			return err
		}

		item.ID = kernel.UUIDFromGoogle(id)
		item.ProductID = kernel.UUIDFromGoogle(productID)
		item.Price = item.Price.Round(2)
		if len(lensOption) > 0 && strings.TrimSpace(string(lensOption)) != "null" {
			item.LensOption = json.RawMessage(lensOption)
		}
		if prescriptionID.Valid {
			pid := kernel.UUIDFromGoogle(prescriptionID.UUID)
			item.PrescriptionID = &pid
		}

		i, ok := index[orderID]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, item)
	}

	return rows.Err()
}
