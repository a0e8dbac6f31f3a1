package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meeting is a team meeting. A meeting with a nil EndedAt is still in progress.
type Meeting struct {
	MeetingID   uuid.UUID  `gorm:"column:meeting_id;type:uuid;primaryKey" json:"meeting_id"`
	TeamID      uuid.UUID  `gorm:"column:team_id;type:uuid;not null;index" json:"team_id"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	MeetingType string     `gorm:"column:meeting_type;not null" json:"meeting_type"`
	EndedAt     *time.Time `gorm:"column:ended_at" json:"ended_at"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (Meeting) TableName() string {
	return "Meetings"
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.MeetingID == uuid.Nil {
		m.MeetingID = uuid.New()
	}
	return nil
}
