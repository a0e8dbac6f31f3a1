package analytics

import (
	"context"
	"strconv"

	"huddle-backend/internal/pkg/constants"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsTracker counts invite outcomes and emission failures, then delegates to Next.
// Failures are returned for the caller to log.
type MetricsTracker struct {
	Next Tracker

	inviteEmails *prometheus.CounterVec
	failures     prometheus.Counter
}

// NewMetricsTracker registers its collectors with reg.
func NewMetricsTracker(next Tracker, reg prometheus.Registerer) *MetricsTracker {
	t := &MetricsTracker{
		Next: next,
		inviteEmails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "huddle",
			Name:      "invite_emails_total",
			Help:      "Invitation emails attempted, by outcome and target.",
		}, []string{"success", "invite_to"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "huddle",
			Name:      "analytics_emit_failures_total",
			Help:      "Analytics batches that could not be emitted.",
		}),
	}
	reg.MustRegister(t.inviteEmails, t.failures)
	return t
}

func (t *MetricsTracker) Track(ctx context.Context, events []Event) error {
	for _, e := range events {
		if e.Name != constants.EventInviteEmailSent {
			continue
		}
		success, _ := e.Properties["success"].(bool)
		inviteTo, _ := e.Properties["inviteTo"].(string)
		t.inviteEmails.WithLabelValues(strconv.FormatBool(success), inviteTo).Inc()
	}
	if t.Next == nil {
		return nil
	}
	if err := t.Next.Track(ctx, events); err != nil {
		t.failures.Inc()
		return err
	}
	return nil
}
