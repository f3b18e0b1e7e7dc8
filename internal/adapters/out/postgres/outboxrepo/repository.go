package outboxrepo

import (
	"context"

	"optistore/internal/core/domain/model/notification"
	"optistore/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutbox implements NotificationOutbox using GORM.
type GormOutbox struct {
	db *gorm.DB
}

func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db}
}

// Add inserts messages in one statement.
func (r *GormOutbox) Add(ctx context.Context, messages ...*notification.Message) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}
		dto, err := fromDomain(m)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetPending returns up to limit pending messages, oldest first. Rows are locked
// with FOR UPDATE SKIP LOCKED so concurrent dispatchers take disjoint batches.
func (r *GormOutbox) GetPending(ctx context.Context, limit int) ([]*notification.Message, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("state = ?", string(notification.Pending)).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*notification.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// Update stores the delivery state of a message.
func (r *GormOutbox) Update(ctx context.Context, message *notification.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&MessageDTO{}).Where("id = ?", message.ID().Bytes()).Updates(map[string]any{
		"state":      string(message.State()),
		"attempts":   message.Attempts(),
		"last_error": message.LastError(),
		"sent_at":    message.SentAt(),
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", message.ID().String())
	}
	return nil
}
