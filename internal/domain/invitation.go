package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvitationEmailRequired = errors.New("invitation email is required")
	ErrInvitationTokenRequired = errors.New("invitation token is required")
	ErrInvitationTeamRequired  = errors.New("invitation team is required")
	ErrInviterRequired         = errors.New("invitation inviter is required")
)

// TeamInvitation is an offer for one email address to join a team. Only AcceptedAt and
// AcceptedBy change after creation.
type TeamInvitation struct {
	InvitationID uuid.UUID  `gorm:"column:invitation_id;type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"column:email;not null;index" json:"email"`
	InvitedBy    uuid.UUID  `gorm:"column:invited_by;type:uuid;not null" json:"invitedBy"`
	TeamID       uuid.UUID  `gorm:"column:team_id;type:uuid;not null;index" json:"teamId"`
	MeetingID    *uuid.UUID `gorm:"column:meeting_id;type:uuid" json:"meetingId,omitempty"`
	Token        string     `gorm:"column:token;not null;uniqueIndex" json:"-"`
	ExpiresAt    time.Time  `gorm:"column:expires_at;not null" json:"expiresAt"`
	AcceptedAt   *time.Time `gorm:"column:accepted_at" json:"acceptedAt"`
	AcceptedBy   *uuid.UUID `gorm:"column:accepted_by;type:uuid" json:"acceptedBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (TeamInvitation) TableName() string {
	return "TeamInvitations"
}

func (i *TeamInvitation) BeforeCreate(tx *gorm.DB) error {
	if i.InvitationID == uuid.Nil {
		i.InvitationID = uuid.New()
	}
	return nil
}

// IsExpired reports whether the invitation can no longer be accepted at now.
func (i *TeamInvitation) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}

// NewTeamInvitationParams holds the fields of a fresh invitation.
type NewTeamInvitationParams struct {
	Email     string
	InvitedBy uuid.UUID
	TeamID    uuid.UUID
	MeetingID *uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// NewTeamInvitation validates p and returns an invitation with its id assigned.
func NewTeamInvitation(p NewTeamInvitationParams) (*TeamInvitation, error) {
	if strings.TrimSpace(p.Email) == "" {
		return nil, ErrInvitationEmailRequired
	}
	if p.Token == "" {
		return nil, ErrInvitationTokenRequired
	}
	if p.TeamID == uuid.Nil {
		return nil, ErrInvitationTeamRequired
	}
	if p.InvitedBy == uuid.Nil {
		return nil, ErrInviterRequired
	}
	return &TeamInvitation{
		InvitationID: uuid.New(),
		Email:        p.Email,
		InvitedBy:    p.InvitedBy,
		TeamID:       p.TeamID,
		MeetingID:    p.MeetingID,
		Token:        p.Token,
		ExpiresAt:    p.ExpiresAt,
	}, nil
}
