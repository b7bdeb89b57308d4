// Package notify delivers computed alerts to the mentor-facing channels.
// Delivery is best effort; the analysis pipeline never depends on it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"

	"tradementor/internal/config"
	"tradementor/internal/models"
)

// Notifier defines the interface for sending alert notifications.
type Notifier interface {
	SendAlert(ctx context.Context, alert *models.Alert) error
}

// MultiNotifier fans an alert out to every enabled channel, collecting the
// first error but attempting all channels.
type MultiNotifier struct {
	channels []Notifier
}

// NewNotifier builds the channel set from configuration. With
// notifications disabled it returns a no-op notifier.
func NewNotifier(cfg config.NotificationConfig) *MultiNotifier {
	m := &MultiNotifier{}
	if !cfg.Enabled {
		return m
	}
	m.channels = append(m.channels, NewTerminalNotifier())
	if cfg.Webhook.Enabled && cfg.Webhook.URL != "" {
		m.channels = append(m.channels, NewWebhookNotifier(cfg.Webhook.URL))
	}
	return m
}

// SendAlert delivers the alert on every channel.
func (m *MultiNotifier) SendAlert(ctx context.Context, alert *models.Alert) error {
	var firstErr error
	for _, ch := range m.channels {
		if err := ch.SendAlert(ctx, alert); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// TerminalNotifier prints alerts to stderr with severity coloring.
type TerminalNotifier struct {
	critical *color.Color
	high     *color.Color
	medium   *color.Color
	low      *color.Color
}

// NewTerminalNotifier creates a terminal notification channel.
func NewTerminalNotifier() *TerminalNotifier {
	return &TerminalNotifier{
		critical: color.New(color.FgRed, color.Bold),
		high:     color.New(color.FgRed),
		medium:   color.New(color.FgYellow),
		low:      color.New(color.FgCyan),
	}
}

// SendAlert prints the alert.
func (t *TerminalNotifier) SendAlert(_ context.Context, alert *models.Alert) error {
	c := t.low
	switch alert.Severity {
	case models.SeverityCritical:
		c = t.critical
	case models.SeverityHigh:
		c = t.high
	case models.SeverityMedium:
		c = t.medium
	}
	_, err := c.Fprintf(os.Stderr, "[%s] %s %s: %s\n",
		alert.Severity, alert.StudentID, alert.Type, alert.Message)
	return err
}

// WebhookNotifier posts alerts as JSON to a configured URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a webhook notification channel.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendAlert posts the alert payload.
func (w *WebhookNotifier) SendAlert(ctx context.Context, alert *models.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
