// Package mailer sends transactional email through a JSON HTTP API.
// The provider is any Mailtrap-style endpoint that accepts a bearer
// key and a from/to/subject/text payload; delivery happens inline on
// the request path with a bounded client timeout.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender is what the password handlers depend on; tests substitute a
// recording fake.
type Sender interface {
	SendPasswordReset(ctx context.Context, toEmail, resetURL string) error
}

// Client talks to the configured mail API endpoint.
type Client struct {
	URL    string
	APIKey string
	From   string
	HTTP   *http.Client
}

func NewClient(url, apiKey, from string) *Client {
	return &Client{
		URL:    url,
		APIKey: apiKey,
		From:   from,
		HTTP:   &http.Client{Timeout: 10 * time.Second},
	}
}

// recipient represents an email recipient or sender.
type recipient struct {
	Email string `json:"email"`
}

// emailRequest represents the request payload for sending an email.
type emailRequest struct {
	From     recipient   `json:"from"`
	To       []recipient `json:"to"`
	Subject  string      `json:"subject"`
	Text     string      `json:"text"`
	Category string      `json:"category,omitempty"`
}

// SendPasswordReset mails a reset link. The link embeds the raw reset
// token; the message mirrors what the reset page tells the user about
// the one-hour validity window.
func (c *Client) SendPasswordReset(ctx context.Context, toEmail, resetURL string) error {
	body := fmt.Sprintf(
		"We received a request to reset your password.\n\n"+
			"Click the link to reset it: %s\n\n"+
			"The link expires in 1 hour. If you didn't request a reset, ignore this email.\n",
		resetURL)

	return c.send(ctx, emailRequest{
		From:     recipient{Email: c.From},
		To:       []recipient{{Email: toEmail}},
		Subject:  "Password Reset",
		Text:     body,
		Category: "password_reset",
	})
}

func (c *Client) send(ctx context.Context, email emailRequest) error {
	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail API returned status: %d", resp.StatusCode)
	}
	return nil
}
