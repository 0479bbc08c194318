package apify

import (
	"context"
	"errors"

	"github.com/thegab/tiktok-scraper/internal/domain"
)

var (
	// ErrMissingToken means no Apify credentials are configured. This is a
	// precondition failure: no request is attempted.
	ErrMissingToken = errors.New("apify token is not configured")

	// ErrRunFailed is returned when the backend reports the actor run as
	// FAILED.
	ErrRunFailed = errors.New("actor run failed")

	// ErrRunTimedOut is returned when the run does not reach a terminal
	// status within the polling budget.
	ErrRunTimedOut = errors.New("actor run timed out")
)

// Client drives one hashtag scrape against the remote backend: submit an
// actor run, poll it until a terminal status or the wall-clock budget runs
// out, and fetch the dataset items on success. The returned status is always
// meaningful, even when records are empty.
type Client interface {
	ScrapeHashtag(ctx context.Context, hashtag string, maxResults int) ([]domain.RawVideo, domain.JobStatus, error)
}
