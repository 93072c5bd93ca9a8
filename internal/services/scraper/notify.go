package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
)

// webhookUsername is the display name used for Discord messages.
const webhookUsername = "今彩539資料監控"

type webhookPayload struct {
	Content  string `json:"content"`
	Username string `json:"username"`
}

// UpdateMessage formats the webhook message announcing a refreshed dataset.
func UpdateMessage(latestDate string, total, added int, now time.Time) string {
	return fmt.Sprintf("✅ **Daily Cash 539 data updated**\n"+
		"📅 Latest draw: %s\n"+
		"🆕 New draws: %d\n"+
		"📊 Total records: %d\n"+
		"⏰ Updated at: %s",
		latestDate, added, total, now.Format("2006-01-02 15:04:05"))
}

// Notify posts an update message to the configured Discord webhook. It is a
// no-op when no webhook is configured.
func (s *Scraper) Notify(ctx context.Context, latestDate string, total, added int) error {
	if s.cfg.WebhookURL == "" {
		logger.Debug("no webhook configured, skipping notification")
		return nil
	}

	body, err := json.Marshal(webhookPayload{
		Content:  UpdateMessage(latestDate, total, added, time.Now()),
		Username: webhookUsername,
	})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Discord answers 204 No Content on success.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: webhook returned %d", ErrHTTPStatus, resp.StatusCode)
	}

	logger.Info("webhook notification sent", "latest", latestDate, "added", added)
	return nil
}
