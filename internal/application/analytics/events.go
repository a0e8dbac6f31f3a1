// Package analytics records product analytics events.
package analytics

import (
	"time"

	"huddle-backend/internal/pkg/constants"

	"github.com/google/uuid"
)

// Event is one analytics record ready to be stored or queued.
type Event struct {
	Name       string         `json:"name"`
	UserID     uuid.UUID      `json:"userId"`
	Properties map[string]any `json:"properties"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// InviteEmailSent describes one attempted invitation email.
type InviteEmailSent struct {
	ViewerID            uuid.UUID
	TeamID              uuid.UUID
	InviteeEmail        string
	IsExistingUser      bool
	InviteTo            string // constants.InviteToMeeting or constants.InviteToTeam
	Success             bool
	IsInvitedOnCreation bool
}

func (e InviteEmailSent) Event(at time.Time) Event {
	return Event{
		Name:   constants.EventInviteEmailSent,
		UserID: e.ViewerID,
		Properties: map[string]any{
			"teamId":              e.TeamID.String(),
			"inviteeEmail":        e.InviteeEmail,
			"isExistingUser":      e.IsExistingUser,
			"inviteTo":            e.InviteTo,
			"success":             e.Success,
			"isInvitedOnCreation": e.IsInvitedOnCreation,
		},
		OccurredAt: at,
	}
}
