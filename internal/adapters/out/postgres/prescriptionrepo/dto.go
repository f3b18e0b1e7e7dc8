// Package prescriptionrepo checks prescription references of order items.
package prescriptionrepo

import (
	"time"

	"github.com/google/uuid"
)

// PrescriptionDTO maps the prescriptions table. Order items reference it and
// lose the reference when a prescription is removed.
type PrescriptionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PrescriptionDTO) TableName() string {
	return "prescriptions"
}
