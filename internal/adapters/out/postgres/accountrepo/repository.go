package accountrepo

import (
	"context"
	"errors"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAccountDirectory implements AccountDirectory using GORM.
type GormAccountDirectory struct {
	db *gorm.DB
}

func NewGormAccountDirectory(db *gorm.DB) *GormAccountDirectory {
	return &GormAccountDirectory{db: db}
}

// Get retrieves a user account by ID.
func (r *GormAccountDirectory) Get(ctx context.Context, id kernel.UUID) (*access.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
