package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"huddle-backend/internal/infrastructure/queue"

	"github.com/hibiken/asynq"
)

// TaskTrackEvents is the asynq task type carrying a batch of events.
const TaskTrackEvents = "analytics:track"

// Enqueuer is the part of *asynq.Client the queue tracker needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueTracker hands events to the worker instead of writing them inline.
type QueueTracker struct {
	Client Enqueuer
}

// NewTrackTask packs events into a task payload.
func NewTrackTask(events []Event) (*asynq.Task, error) {
	payload, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("marshal events: %w", err)
	}
	return asynq.NewTask(TaskTrackEvents, payload, asynq.Queue(queue.Low), asynq.MaxRetry(5)), nil
}

func (t *QueueTracker) Track(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	task, err := NewTrackTask(events)
	if err != nil {
		return err
	}
	if _, err := t.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue analytics: %w", err)
	}
	return nil
}

// TrackHandler persists queued batches through next.
func TrackHandler(next Tracker) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var events []Event
		if err := json.Unmarshal(task.Payload(), &events); err != nil {
			return fmt.Errorf("unmarshal events: %v: %w", err, asynq.SkipRetry)
		}
		return next.Track(ctx, events)
	}
}
