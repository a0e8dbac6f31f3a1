package emails

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const brevoAPI = "https://api.brevo.com/v3"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoContact   `json:"sender"`
	To          []BrevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
}

type BrevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BrevoClient sends emails via the Brevo (Sendinblue) transactional API.
type BrevoClient struct {
	http *resty.Client
	from BrevoContact
}

// NewBrevoClient builds a client; baseURL may be empty to use the public API.
func NewBrevoClient(apiKey, fromEmail, fromName, baseURL string) *BrevoClient {
	if baseURL == "" {
		baseURL = brevoAPI
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("api-key", apiKey).
		SetHeader("Accept", "application/json")
	return &BrevoClient{
		http: c,
		from: BrevoContact{Email: fromEmail, Name: fromName},
	}
}

// SendEmail posts msg to /smtp/email. Any non-2xx answer is an error.
func (c *BrevoClient) SendEmail(ctx context.Context, msg Message) error {
	var apiErr brevoError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(BrevoSendRequest{
			Sender:      c.from,
			To:          []BrevoContact{{Email: msg.To}},
			Subject:     msg.Subject,
			HTMLContent: msg.HTML,
			TextContent: msg.Body,
			Tags:        msg.Tags,
		}).
		SetError(&apiErr).
		Post("/smtp/email")
	if err != nil {
		return fmt.Errorf("brevo send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode(), apiErr.Message)
	}
	return nil
}
