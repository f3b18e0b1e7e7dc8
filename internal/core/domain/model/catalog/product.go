// Package catalog holds the read-only product view the order workflow looks up
// when an order is placed. The catalog itself is managed elsewhere.
package catalog

import (
	"errors"

	"optistore/internal/core/domain/model/kernel"
)

// Product is a catalog entry as seen at lookup time.
type Product struct {
	id    kernel.UUID
	name  string
	price kernel.Money
	stock int
}

func RestoreProduct(id kernel.UUID, name string, price kernel.Money, stock int) (*Product, error) {
	if err := errors.Join(id.Validate(), price.Validate()); err != nil {
		return nil, err
	}
	return &Product{id: id, name: name, price: price, stock: stock}, nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

// Price is the current list price. Orders carry their own unit price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// Stock is informational only; placing an order does not reserve stock.
func (p *Product) Stock() int {
	return p.stock
}
