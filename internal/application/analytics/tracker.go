package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"huddle-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tracker emits a batch of events.
type Tracker interface {
	Track(ctx context.Context, events []Event) error
}

// StoreTracker writes events to the AnalyticsEvents table in one batch insert.
type StoreTracker struct {
	DB *gorm.DB
}

func (t *StoreTracker) Track(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]domain.AnalyticsEvent, 0, len(events))
	for _, e := range events {
		props, err := json.Marshal(e.Properties)
		if err != nil {
			return fmt.Errorf("marshal %q properties: %w", e.Name, err)
		}
		rows = append(rows, domain.AnalyticsEvent{
			Name:       e.Name,
			UserID:     e.UserID,
			Properties: datatypes.JSON(props),
			OccurredAt: e.OccurredAt,
		})
	}
	if err := t.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert analytics events: %w", err)
	}
	return nil
}
