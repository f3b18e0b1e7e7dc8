package prescriptionrepo

import (
	"context"

	"optistore/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormPrescriptionRegistry implements PrescriptionRegistry using GORM.
type GormPrescriptionRegistry struct {
	db *gorm.DB
}

func NewGormPrescriptionRegistry(db *gorm.DB) *GormPrescriptionRegistry {
	return &GormPrescriptionRegistry{db: db}
}

func (r *GormPrescriptionRegistry) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&PrescriptionDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
