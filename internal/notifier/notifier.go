package notifier

import (
	"context"

	"github.com/thegab/tiktok-scraper/internal/domain"
)

// Client delivers the end-of-run report to an external channel. Delivery is
// best-effort: the pipeline logs a failed notification and moves on.
//
//go:generate go run go.uber.org/mock/mockgen -source=notifier.go -destination=mocks/mock.go
type Client interface {
	NotifyRunSummary(ctx context.Context, summary domain.RunSummary, posts, rollups domain.UploadResult) error
}
