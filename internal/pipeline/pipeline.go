package pipeline

import (
	"context"

	"github.com/thegab/tiktok-scraper/internal/domain"
)

// Client runs the scrape → extract → aggregate → persist pipeline.
type Client interface {
	// Run executes one full pipeline pass and returns its summary. Only a
	// precondition failure (no credentials, unreadable dataset file) is an
	// error; per-hashtag and per-record problems are absorbed and counted.
	Run(ctx context.Context) (*domain.RunSummary, error)

	// ScheduleRuns starts the interval scheduler for daemon mode and
	// returns immediately. The scheduler shuts down when ctx is cancelled.
	ScheduleRuns(ctx context.Context) error
}
