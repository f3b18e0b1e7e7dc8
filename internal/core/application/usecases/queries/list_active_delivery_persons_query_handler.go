package queries

import (
	"context"
	"strings"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListActiveDeliveryPersonsQueryHandler reads active delivery users sorted by name.
// Users without a name are listed under their email.
type ListActiveDeliveryPersonsQueryHandler struct {
	db *gorm.DB
}

func NewListActiveDeliveryPersonsQueryHandler(db *gorm.DB) ListActiveDeliveryPersonsQueryHandler {
	return ListActiveDeliveryPersonsQueryHandler{db: db}
}

func (h ListActiveDeliveryPersonsQueryHandler) Handle(
	ctx context.Context,
	query ListActiveDeliveryPersonsQuery,
) ([]DeliveryPersonResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := access.Authorize(access.ListDeliveryPersons, query.Caller()); err != nil {
		return nil, err
	}

	persons := make([]DeliveryPersonResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email
		FROM users
		WHERE role = ? AND is_active = ?
		ORDER BY name, email
	`, string(access.Delivery), true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var person DeliveryPersonResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &person.Name, &person.Email); err != nil {
			return nil, err
		}

		person.ID = kernel.UUIDFromGoogle(id)
		if strings.TrimSpace(person.Name) == "" {
			person.Name = person.Email
		}
		persons = append(persons, person)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return persons, nil
}
