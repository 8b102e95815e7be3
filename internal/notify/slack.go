package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// PostSlackWebhook mirrors a report to a Slack incoming webhook.
func PostSlackWebhook(ctx context.Context, webhookURL, text string) error {
	if webhookURL == "" {
		return fmt.Errorf("slack webhook URL is not configured")
	}

	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookContext(ctx, webhookURL, msg); err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	return nil
}
