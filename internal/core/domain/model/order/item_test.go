package order_test

import (
	"encoding/json"
	"testing"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	price := kernel.MustMoney("49.90")

	t.Run("keeps snapshot and optional references", func(t *testing.T) {
		rx := kernel.NewUUID()
		item, err := order.NewItem(kernel.NewUUID(), "Progressive lens", 1, price, json.RawMessage(`{"index":1.67}`), &rx)

		require.NoError(t, err)
		assert.Equal(t, "Progressive lens", item.ProductName())
		assert.Equal(t, "49.90", item.Price().String())
		assert.JSONEq(t, `{"index":1.67}`, string(item.LensOption()))
		require.NotNil(t, item.PrescriptionID())
		assert.True(t, rx.IsEqual(*item.PrescriptionID()))
	})

	t.Run("quantity must be at least one", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Case", 0, price, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("lens option must be JSON", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Case", 1, price, json.RawMessage(`{broken`), nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("price must be constructed", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Case", 1, kernel.Money{}, nil, nil)
		require.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
	})
}
