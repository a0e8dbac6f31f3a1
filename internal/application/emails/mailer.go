package emails

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Message is one transactional email.
type Message struct {
	To      string
	Subject string
	Body    string // plain-text alternative
	HTML    string
	Tags    []string
}

// Mailer delivers a message. A nil error means the transport accepted it.
type Mailer interface {
	SendEmail(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them (development without a mail key).
type LogMailer struct{}

func (LogMailer) SendEmail(_ context.Context, msg Message) error {
	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Strs("tags", msg.Tags).
		Msg("mail transport not configured, email logged only")
	return nil
}
