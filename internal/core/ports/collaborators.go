package ports

import (
	"context"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/catalog"
	"optistore/internal/core/domain/model/kernel"
)

// ProductCatalog looks products up by id. Missing products yield errs.ErrObjectNotFound.
type ProductCatalog interface {
	Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)
}

// AccountDirectory looks user accounts up by id. Missing users yield errs.ErrObjectNotFound.
type AccountDirectory interface {
	Get(ctx context.Context, id kernel.UUID) (*access.Account, error)
}

// PrescriptionRegistry answers whether a prescription exists.
type PrescriptionRegistry interface {
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}
