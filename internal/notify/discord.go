package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DiscordNotifier posts alert messages to a Discord webhook.
type DiscordNotifier struct {
	logger     *slog.Logger
	client     *http.Client
	webhookURL string
}

// NewDiscordNotifier creates a notifier for the given webhook URL.
func NewDiscordNotifier(logger *slog.Logger, webhookURL string) (*DiscordNotifier, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("discord webhook URL is not set")
	}
	return &DiscordNotifier{
		logger:     logger,
		client:     &http.Client{Timeout: 10 * time.Second},
		webhookURL: webhookURL,
	}, nil
}

// SendAlert posts the message as webhook content. Any non-2xx response is a
// NotificationError; the caller decides what to do with it.
func (d *DiscordNotifier) SendAlert(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return &NotificationError{Channel: "discord", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return &NotificationError{Channel: "discord", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return &NotificationError{Channel: "discord", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return &NotificationError{
			Channel: "discord",
			Err:     fmt.Errorf("webhook returned HTTP %s: %s", resp.Status, body),
		}
	}

	d.logger.Info("alert delivered", "channel", "discord")
	return nil
}
