package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"tempus/core/entity"

	"github.com/google/uuid"
)

// NotificationType distinguishes event-change notices from other notices.
type NotificationType string

const (
	TypeEventCreated   NotificationType = "event_created"
	TypeEventUpdated   NotificationType = "event_updated"
	TypeEventCancelled NotificationType = "event_cancelled"
)

type Notification struct {
	UserID  uuid.UUID        `db:"user_id" json:"user_id"`
	Title   string           `db:"title" json:"title"`
	Message string           `db:"message" json:"message"`
	Type    NotificationType `db:"type" json:"type"`
	Data    JSONB            `db:"data" json:"data"`
	IsRead  bool             `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type JSONB map[string]interface{}

func (a JSONB) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *JSONB) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &a)
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
