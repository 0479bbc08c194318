package notifierimpl

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/thegab/tiktok-scraper/internal/domain"
	"github.com/thegab/tiktok-scraper/internal/notifier"
	"github.com/thegab/tiktok-scraper/pkg/formatter"
	"github.com/thegab/tiktok-scraper/pkg/retry"
)

// NotifyRunSummary sends the run report to the configured channel, retrying
// transient Telegram API errors with backoff.
func (tg *TelegramImpl) NotifyRunSummary(ctx context.Context, summary domain.RunSummary, posts, rollups domain.UploadResult) error {
	text := buildReport(summary, posts, rollups)

	channelName := "@" + strings.TrimPrefix(tg.channel, "@")
	msg := tgbotapi.NewMessageToChannel(channelName, text)

	err := retry.Do(ctx, tg.logger, "telegram notify", func() error {
		_, sendErr := tg.bot.Send(msg)
		return sendErr
	}, retry.DefaultConfig())
	if err != nil {
		tg.logger.Error("Error sending run report to channel", "channel", channelName, "error", err)
		return fmt.Errorf("failed to send run report: %w", err)
	}

	tg.logger.Info("Run report sent to channel", "channel", channelName)
	return nil
}

func buildReport(summary domain.RunSummary, posts, rollups domain.UploadResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "TikTok scrape run %s\n", summary.Timestamp.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Posts: %s (%s with restaurants, %s)\n",
		formatter.FormatNumber(summary.TotalPosts),
		formatter.FormatNumber(summary.PostsWithRestaurants),
		summary.ExtractionRate,
	)
	fmt.Fprintf(&b, "Unique restaurants: %d\n", summary.UniqueRestaurants)
	if summary.TopRestaurant != "" {
		fmt.Fprintf(&b, "Top restaurant: %s\n", summary.TopRestaurant)
	}
	fmt.Fprintf(&b, "Uploaded: %d posts (%d failed), %d rollups (%d failed)",
		posts.Uploaded, posts.Failed, rollups.Uploaded, rollups.Failed)

	return b.String()
}

// Noop swallows run reports when Telegram is not configured.
type Noop struct{}

var _ notifier.Client = (*Noop)(nil)

func (n *Noop) NotifyRunSummary(context.Context, domain.RunSummary, domain.UploadResult, domain.UploadResult) error {
	return nil
}
