// Package mailer sends transactional email through the EmailJS REST API.
//
// EmailJS has no Go SDK; the API is a single JSON POST carrying the
// service/template/public key triple and template parameters. The private
// key enables server-context sending. Every send is a single attempt; the
// caller decides whether a failure is fatal.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config holds the EmailJS credentials.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
}

// Enabled reports whether the required keys are configured.
func (c Config) Enabled() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// Mailer sends email via EmailJS.
type Mailer struct {
	cfg      Config
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

// New creates a Mailer. A nil http.Client falls back to http.DefaultClient.
func New(cfg Config, client *http.Client, logger *zap.Logger) *Mailer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Mailer{
		cfg:      cfg,
		endpoint: defaultEndpoint,
		client:   client,
		log:      logger,
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts one email with the given template parameters. Parameters are
// template-defined; by convention they include to_email, to_name, and link.
func (m *Mailer) Send(ctx context.Context, params map[string]string) error {
	if !m.cfg.Enabled() {
		return fmt.Errorf("mailer not configured")
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      m.cfg.ServiceID,
		TemplateID:     m.cfg.TemplateID,
		UserID:         m.cfg.PublicKey,
		AccessToken:    m.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		m.log.Warn("emailjs send failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail))
		return fmt.Errorf("emailjs responded %d", resp.StatusCode)
	}
	return nil
}
