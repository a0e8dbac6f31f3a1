package meetings

import (
	"context"
	"errors"

	"huddle-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service reads team meetings.
type Service struct {
	DB *gorm.DB
}

// BestInvitationMeeting picks the meeting an invitation should point at: the requested meeting
// when it belongs to the team and is still running, otherwise the team's newest running meeting.
// It returns nil when the team has no running meeting.
func (s *Service) BestInvitationMeeting(ctx context.Context, teamID uuid.UUID, meetingID *uuid.UUID) (*domain.Meeting, error) {
	db := s.DB.WithContext(ctx)
	if meetingID != nil && *meetingID != uuid.Nil {
		var m domain.Meeting
		err := db.Where("meeting_id = ? AND team_id = ? AND ended_at IS NULL", *meetingID, teamID).First(&m).Error
		if err == nil {
			return &m, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var m domain.Meeting
	err := db.Where("team_id = ? AND ended_at IS NULL", teamID).Order("created_at DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
