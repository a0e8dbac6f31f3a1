package invitations

import (
	"context"
	"errors"
	"strings"

	"huddle-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcceptResult tells the client which team the user just joined.
type AcceptResult struct {
	InvitationID uuid.UUID `json:"invitationId"`
	TeamID       uuid.UUID `json:"teamId"`
	TeamName     string    `json:"teamName"`
}

// AcceptInvitation redeems token for userID: the invitation is marked accepted, the user
// becomes a team member (rejoining if previously removed) and the matching notification is read.
func (s *Service) AcceptInvitation(ctx context.Context, token string, userID uuid.UUID) (*AcceptResult, error) {
	var res *AcceptResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := s.invitationByToken(ctx, tx, token)
		if err != nil {
			return err
		}

		var user domain.User
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(user.Email), strings.TrimSpace(inv.Email)) {
			return ErrEmailMismatch
		}

		now := s.now()
		upd := tx.Model(&domain.TeamInvitation{}).
			Where("invitation_id = ? AND accepted_at IS NULL", inv.InvitationID).
			Updates(map[string]interface{}{"accepted_at": now, "accepted_by": user.UserID})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return ErrInvitationAccepted
		}

		if err := joinTeam(tx, inv.TeamID, user.UserID); err != nil {
			return err
		}

		err = tx.Model(&domain.Notification{}).
			Where("user_id = ? AND invitation_id = ?", user.UserID, inv.InvitationID).
			Update("status", domain.NotificationStatusRead).Error
		if err != nil {
			return err
		}

		var team domain.Team
		if err := tx.Where("team_id = ?", inv.TeamID).First(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		res = &AcceptResult{InvitationID: inv.InvitationID, TeamID: team.TeamID, TeamName: team.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func joinTeam(tx *gorm.DB, teamID, userID uuid.UUID) error {
	var member domain.TeamMember
	err := tx.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&domain.TeamMember{TeamID: teamID, UserID: userID, IsNotRemoved: true}).Error
	}
	if err != nil {
		return err
	}
	if member.IsNotRemoved {
		return nil
	}
	return tx.Model(&member).Update("is_not_removed", true).Error
}
