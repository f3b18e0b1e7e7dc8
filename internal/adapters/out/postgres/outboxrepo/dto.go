// Package outboxrepo stores notification messages until the dispatch job sends them.
package outboxrepo

import (
	"encoding/json"
	"time"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageDTO represents one row of the notification outbox.
type MessageDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Kind      string         `gorm:"type:varchar(32);not null"`
	ToName    string         `gorm:"type:varchar(255);not null;default:''"`
	ToEmail   string         `gorm:"type:varchar(254);not null"`
	Subject   string         `gorm:"type:varchar(255);not null"`
	Data      datatypes.JSON `gorm:"not null"`
	State     string         `gorm:"type:varchar(16);not null;index:idx_outbox_state_created,priority:1"`
	Attempts  int            `gorm:"type:int;not null;default:0"`
	LastError string         `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time      `gorm:"not null;index:idx_outbox_state_created,priority:2"`
	SentAt    *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m *notification.Message) (MessageDTO, error) {
	data, err := json.Marshal(m.Data())
	if err != nil {
		return MessageDTO{}, err
	}

	return MessageDTO{
		ID:        m.ID().Bytes(),
		Kind:      string(m.Kind()),
		ToName:    m.ToName(),
		ToEmail:   m.ToEmail(),
		Subject:   m.Subject(),
		Data:      datatypes.JSON(data),
		State:     string(m.State()),
		Attempts:  m.Attempts(),
		LastError: m.LastError(),
		CreatedAt: m.CreatedAt(),
		SentAt:    m.SentAt(),
	}, nil
}

func toDomain(dto MessageDTO) (*notification.Message, error) {
	data := make(map[string]string)
	if len(dto.Data) > 0 && string(dto.Data) != "null" {
		if err := json.Unmarshal(dto.Data, &data); err != nil {
			return nil, err
		}
	}

	return notification.RestoreMessage(notification.MessageState{
		ID:        kernel.UUIDFromGoogle(dto.ID),
		Kind:      notification.Kind(dto.Kind),
		ToName:    dto.ToName,
		ToEmail:   dto.ToEmail,
		Subject:   dto.Subject,
		Data:      data,
		State:     notification.State(dto.State),
		Attempts:  dto.Attempts,
		LastError: dto.LastError,
		CreatedAt: dto.CreatedAt,
		SentAt:    dto.SentAt,
	})
}
