package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeTeamInvitation = "TEAM_INVITATION"

	NotificationStatusUnread = "UNREAD"
	NotificationStatusRead   = "READ"
)

var (
	ErrNotificationUserRequired       = errors.New("notification user is required")
	ErrNotificationInvitationRequired = errors.New("notification invitation is required")
)

// Notification is an inbox item for a known user. Team invitation notifications point at
// the invitation they announce.
type Notification struct {
	NotificationID uuid.UUID `gorm:"column:notification_id;type:uuid;primaryKey" json:"id"`
	Type           string    `gorm:"column:type;not null" json:"type"`
	Status         string    `gorm:"column:status;not null;default:'UNREAD'" json:"status"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	InvitationID   uuid.UUID `gorm:"column:invitation_id;type:uuid;index" json:"invitationId"`
	TeamID         uuid.UUID `gorm:"column:team_id;type:uuid;not null" json:"teamId"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (Notification) TableName() string {
	return "Notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}

// NewTeamInvitationNotification builds the unread inbox item for invitation inv sent to userID.
func NewTeamInvitationNotification(userID uuid.UUID, inv *TeamInvitation) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, ErrNotificationUserRequired
	}
	if inv == nil || inv.InvitationID == uuid.Nil {
		return nil, ErrNotificationInvitationRequired
	}
	return &Notification{
		NotificationID: uuid.New(),
		Type:           NotificationTypeTeamInvitation,
		Status:         NotificationStatusUnread,
		UserID:         userID,
		InvitationID:   inv.InvitationID,
		TeamID:         inv.TeamID,
	}, nil
}
