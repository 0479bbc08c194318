// Package sink writes the per-run local artifacts: the processed posts as
// JSON, the restaurant metrics as CSV and the run summary as JSON. All three
// share one timestamp so a run's files sort together.
package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/fx"

	"github.com/thegab/tiktok-scraper/internal/domain"
	"github.com/thegab/tiktok-scraper/pkg/config"
	"github.com/thegab/tiktok-scraper/pkg/logger"
)

// timestampLayout names files like posts_raw_20250613_094512.json.
const timestampLayout = "20060102_150405"

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type Sink struct {
	dir    string
	logger logger.Logger
}

func New(opts Opts) *Sink {
	return &Sink{
		dir:    opts.Config.Scraper.OutputDir,
		logger: opts.Logger.WithComponent("Sink"),
	}
}

// WritePosts dumps the processed posts to posts_raw_{ts}.json and returns
// the file path.
func (s *Sink) WritePosts(posts []domain.Post, at time.Time) (string, error) {
	if posts == nil {
		posts = []domain.Post{}
	}
	path := filepath.Join(s.dir, fmt.Sprintf("posts_raw_%s.json", at.Format(timestampLayout)))
	if err := s.writeJSON(path, posts); err != nil {
		return "", err
	}
	s.logger.Info("Saved posts file", "path", path, "posts", len(posts))
	return path, nil
}

// WriteMetricsCSV dumps the rollups to restaurant_metrics_{ts}.csv. Average
// engagement is truncated to a whole number in this artifact; the stored
// rollup keeps the exact value.
func (s *Sink) WriteMetricsCSV(rollups []domain.RestaurantRollup, at time.Time) (string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("restaurant_metrics_%s.csv", at.Format(timestampLayout)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"restaurant", "mentions", "posts", "total_engagement", "avg_engagement"}); err != nil {
		return "", fmt.Errorf("failed to write metrics header: %w", err)
	}
	for _, r := range rollups {
		record := []string{
			r.Name,
			strconv.Itoa(r.MentionCount),
			strconv.Itoa(r.PostCount),
			strconv.Itoa(r.TotalEngagement),
			strconv.Itoa(int(r.AvgEngagement)),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write metrics row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush metrics file: %w", err)
	}

	s.logger.Info("Saved metrics file", "path", path, "restaurants", len(rollups))
	return path, nil
}

// WriteSummary dumps the run summary to summary_{ts}.json.
func (s *Sink) WriteSummary(summary domain.RunSummary, at time.Time) (string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("summary_%s.json", at.Format(timestampLayout)))
	if err := s.writeJSON(path, summary); err != nil {
		return "", err
	}
	s.logger.Info("Saved summary file", "path", path)
	return path, nil
}

func (s *Sink) writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return nil
}
