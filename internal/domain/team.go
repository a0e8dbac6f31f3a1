package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team is the unit people get invited to.
type Team struct {
	TeamID        uuid.UUID `gorm:"column:team_id;type:uuid;primaryKey" json:"team_id"`
	OrgID         uuid.UUID `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	IsOnboardTeam bool      `gorm:"column:is_onboard_team;not null;default:false" json:"is_onboard_team"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Team) TableName() string {
	return "Teams"
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.TeamID == uuid.Nil {
		t.TeamID = uuid.New()
	}
	return nil
}

// TeamMember links a user to a team. Removed members keep their row with IsNotRemoved=false.
type TeamMember struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TeamID       uuid.UUID `gorm:"column:team_id;type:uuid;not null;uniqueIndex:idx_team_user" json:"team_id"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_team_user;index" json:"user_id"`
	IsNotRemoved bool      `gorm:"column:is_not_removed;not null;default:true" json:"is_not_removed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (TeamMember) TableName() string {
	return "TeamMembers"
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
