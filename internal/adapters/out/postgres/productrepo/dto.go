// Package productrepo reads catalog products for the order workflow.
// The products table belongs to the catalog; rows are never written here.
package productrepo

import (
	"optistore/internal/core/domain/model/catalog"
	"optistore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO maps the columns of the catalog's products table that orders depend on.
type ProductDTO struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name  string          `gorm:"type:varchar(255);not null"`
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Stock int             `gorm:"type:int;not null;default:0"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func toDomain(dto ProductDTO) (*catalog.Product, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreProduct(kernel.UUIDFromGoogle(dto.ID), dto.Name, price, dto.Stock)
}
