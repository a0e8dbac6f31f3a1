package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestedAction is an onboarding hint shown to a user until it is removed.
type SuggestedAction struct {
	SuggestedActionID uuid.UUID  `gorm:"column:suggested_action_id;type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Type              string     `gorm:"column:type;not null" json:"type"`
	RemovedAt         *time.Time `gorm:"column:removed_at" json:"removedAt"`
	CreatedAt         time.Time  `json:"createdAt"`
}

func (SuggestedAction) TableName() string {
	return "SuggestedActions"
}

func (s *SuggestedAction) BeforeCreate(tx *gorm.DB) error {
	if s.SuggestedActionID == uuid.Nil {
		s.SuggestedActionID = uuid.New()
	}
	return nil
}
