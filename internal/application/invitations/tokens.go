package invitations

import (
	"context"
	"errors"
	"time"

	"huddle-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Service) invitationByToken(ctx context.Context, db *gorm.DB, token string) (*domain.TeamInvitation, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}
	var inv domain.TeamInvitation
	if err := db.WithContext(ctx).Where("token = ?", token).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if inv.AcceptedAt != nil {
		return nil, ErrInvitationAccepted
	}
	if inv.IsExpired(s.now()) {
		return nil, ErrInvitationExpired
	}
	return &inv, nil
}

// CheckTokenResult describes a pending invitation to the person holding its link.
type CheckTokenResult struct {
	Email       string    `json:"email"`
	TeamID      uuid.UUID `json:"teamId"`
	TeamName    string    `json:"teamName"`
	InviterName string    `json:"inviterName"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Valid       bool      `json:"valid"`
}

// CheckToken verifies that token belongs to a pending, unexpired invitation.
func (s *Service) CheckToken(ctx context.Context, token string) (*CheckTokenResult, error) {
	inv, err := s.invitationByToken(ctx, s.DB, token)
	if err != nil {
		return nil, err
	}
	res := &CheckTokenResult{
		Email:     inv.Email,
		TeamID:    inv.TeamID,
		ExpiresAt: inv.ExpiresAt,
		Valid:     true,
	}
	db := s.DB.WithContext(ctx)
	var team domain.Team
	if err := db.Where("team_id = ?", inv.TeamID).First(&team).Error; err == nil {
		res.TeamName = team.Name
	}
	var inviter domain.User
	if err := db.Where("user_id = ?", inv.InvitedBy).First(&inviter).Error; err == nil {
		res.InviterName = inviter.PreferredName
	}
	return res, nil
}

// ListTeamInvitations returns the team's pending invitations, newest first. Only current
// members of the team may list them.
func (s *Service) ListTeamInvitations(ctx context.Context, teamID, viewerID uuid.UUID) ([]domain.TeamInvitation, error) {
	db := s.DB.WithContext(ctx)
	var count int64
	err := db.Model(&domain.TeamMember{}).
		Where("team_id = ? AND user_id = ? AND is_not_removed = ?", teamID, viewerID, true).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotTeamMember
	}

	var rows []domain.TeamInvitation
	if err := db.Where("team_id = ? AND accepted_at IS NULL", teamID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	now := s.now()
	pending := make([]domain.TeamInvitation, 0, len(rows))
	for _, inv := range rows {
		if !inv.IsExpired(now) {
			pending = append(pending, inv)
		}
	}
	return pending, nil
}
