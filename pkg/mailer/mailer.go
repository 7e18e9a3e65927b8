package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiURL = "https://api.brevo.com/v3/smtp/email"

// Mailer dispatches verification codes. Best effort, never retried here.
type Mailer interface {
	SendVerificationCode(ctx context.Context, toEmail, code string) error
}

// Client sends transactional email through the Brevo HTTP API.
type Client struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

// NewClient creates a mail client. All three credentials are required for
// sends to go out; an unconfigured client errors on use.
func NewClient(apiKey, fromEmail, fromName string) *Client {
	return &Client{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendEmailReq struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// SendVerificationCode emails the 6-digit code to the address.
func (c *Client) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	if c.apiKey == "" || c.fromEmail == "" {
		return fmt.Errorf("mail client not configured, verification code for %s skipped", toEmail)
	}

	body := sendEmailReq{
		Sender:  map[string]string{"email": c.fromEmail, "name": c.fromName},
		To:      []map[string]string{{"email": toEmail}},
		Subject: "Verify your email",
		HTMLContent: fmt.Sprintf(
			"<h2>Please verify your email</h2><p>Enter this verification code: <b>%s</b></p><p>The code expires in 10 minutes.</p>",
			code),
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal email request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
