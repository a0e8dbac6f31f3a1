package suggestedactions

import (
	"context"
	"errors"
	"time"

	"huddle-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service manages onboarding suggestions.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// RemoveSuggestedAction marks the user's live suggestion of the given type as removed and
// returns its id. It returns nil when there was nothing to remove.
func (s *Service) RemoveSuggestedAction(ctx context.Context, userID uuid.UUID, actionType string) (*uuid.UUID, error) {
	db := s.DB.WithContext(ctx)
	var action domain.SuggestedAction
	err := db.Where("user_id = ? AND type = ? AND removed_at IS NULL", userID, actionType).First(&action).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := db.Model(&action).Update("removed_at", s.now()).Error; err != nil {
		return nil, err
	}
	return &action.SuggestedActionID, nil
}
