package commands_test

import (
	"testing"
	"time"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/catalog"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func newCaller(t *testing.T, role access.Role) access.Caller {
	t.Helper()
	c, err := access.NewCaller(kernel.NewUUID(), role)
	require.NoError(t, err)
	return c
}

func billingDetails() order.BillingDetails {
	return order.BillingDetails{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "555-0100",
		Address1: "12 Analytical Row",
		City:     "London",
		State:    "London",
		Country:  "UK",
		ZipCode:  "N1 9GU",
	}
}

func newProduct(t *testing.T, id kernel.UUID, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.RestoreProduct(id, name, kernel.MustMoney("80.00"), 10)
	require.NoError(t, err)
	return p
}

func existingOrder(t *testing.T, ownerID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Aviator frame", 1, kernel.MustMoney("80.00"), nil, nil)
	require.NoError(t, err)
	billing, err := order.NewBilling(billingDetails())
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-42", ownerID, "card", order.HomeDelivery,
		kernel.MustMoney("80.00"), []order.Item{item}, billing, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func deliveryAccount(t *testing.T, active bool) *access.Account {
	t.Helper()
	a, err := access.RestoreAccount(kernel.NewUUID(), "Sam Rider", "sam@example.com", access.Delivery, active)
	require.NoError(t, err)
	return a
}
