package invitations

import (
	"context"
	"fmt"
	"time"

	"huddle-backend/internal/domain"

	"github.com/google/uuid"
)

type writeParams struct {
	Invitees  []string
	Tokens    []string
	Users     []domain.User
	InviterID uuid.UUID
	TeamID    uuid.UUID
	MeetingID *uuid.UUID
	ExpiresAt time.Time
}

// writeInvitations inserts one invitation per invitee, then a notification for every
// invitee that already has an account. The two inserts are not transactional.
func (s *Service) writeInvitations(ctx context.Context, p writeParams) ([]*domain.TeamInvitation, []*domain.Notification, error) {
	if len(p.Invitees) == 0 {
		return nil, nil, nil
	}
	invitations := make([]*domain.TeamInvitation, 0, len(p.Invitees))
	for i, email := range p.Invitees {
		inv, err := domain.NewTeamInvitation(domain.NewTeamInvitationParams{
			Email:     email,
			InvitedBy: p.InviterID,
			TeamID:    p.TeamID,
			MeetingID: p.MeetingID,
			Token:     p.Tokens[i],
			ExpiresAt: p.ExpiresAt,
		})
		if err != nil {
			return nil, nil, err
		}
		invitations = append(invitations, inv)
	}
	db := s.DB.WithContext(ctx)
	if err := db.Create(&invitations).Error; err != nil {
		return nil, nil, fmt.Errorf("insert team invitations: %w", err)
	}

	var notifications []*domain.Notification
	for _, inv := range invitations {
		u := userByEmail(p.Users, inv.Email)
		if u == nil {
			continue
		}
		n, err := domain.NewTeamInvitationNotification(u.UserID, inv)
		if err != nil {
			return nil, nil, err
		}
		notifications = append(notifications, n)
	}
	if len(notifications) > 0 {
		if err := db.Create(&notifications).Error; err != nil {
			return nil, nil, fmt.Errorf("insert invitation notifications: %w", err)
		}
	}
	return invitations, notifications, nil
}
