package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalyticsEvent is a product analytics record. Properties carries the event-specific payload.
type AnalyticsEvent struct {
	EventID    uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	Name       string         `gorm:"column:name;not null;index" json:"name"`
	UserID     uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Properties datatypes.JSON `gorm:"column:properties;type:jsonb;not null" json:"properties"`
	OccurredAt time.Time      `gorm:"column:occurred_at;not null" json:"occurred_at"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (AnalyticsEvent) TableName() string {
	return "AnalyticsEvents"
}

func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
