package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Mailer is a thin client for the transactional email collaborator.
type Mailer struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewMailerFromEnv returns nil when MAIL_API_URL is not set; the mail
// feature is then disabled rather than failing.
func NewMailerFromEnv() *Mailer {
	if os.Getenv("MAIL_API_URL") == "" {
		return nil
	}
	return &Mailer{
		baseURL: os.Getenv("MAIL_API_URL"),
		apiKey:  os.Getenv("MAIL_API_KEY"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sendMailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// Send delivers one email synchronously. No retry; the caller surfaces the
// error and the user re-triggers the action.
func (m *Mailer) Send(to, subject, html, text string) error {
	if m == nil || m.baseURL == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(sendMailRequest{To: to, Subject: subject, HTML: html, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.baseURL+"/send", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail service returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
