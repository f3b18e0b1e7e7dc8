// Package accountrepo reads user accounts owned by the identity service.
package accountrepo

import (
	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO maps the users table columns needed to validate delivery persons
// and address notifications.
type AccountDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null;default:''"`
	Email    string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	Role     string    `gorm:"type:varchar(20);not null;index"`
	IsActive bool      `gorm:"not null"`
}

func (AccountDTO) TableName() string {
	return "users"
}

func toDomain(dto AccountDTO) (*access.Account, error) {
	role, err := access.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return access.RestoreAccount(kernel.UUIDFromGoogle(dto.ID), dto.Name, dto.Email, role, dto.IsActive)
}
