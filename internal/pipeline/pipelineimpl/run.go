package pipelineimpl

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/thegab/tiktok-scraper/internal/aggregator"
	"github.com/thegab/tiktok-scraper/internal/apify"
	"github.com/thegab/tiktok-scraper/internal/domain"
	"github.com/thegab/tiktok-scraper/internal/transformer"
	"github.com/thegab/tiktok-scraper/pkg/formatter"
)

// Run executes one full pipeline pass: collect raw records, transform them
// into posts, annotate restaurant mentions, aggregate, write the local
// artifacts and upload everything to the store. Per-hashtag failures yield
// zero records for that hashtag only; the run itself fails only on a
// precondition (missing credentials, unreadable dataset file).
func (p *PipelineImpl) Run(ctx context.Context) (*domain.RunSummary, error) {
	startedAt := time.Now()
	p.Logger.Info("Pipeline run starting", "hashtags", p.Config.Scraper.Hashtags)

	posts, err := p.collectPosts(ctx, startedAt)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		mentions := p.Extractor.Extract(posts[i].Caption)
		posts[i].Restaurants = mentions
		posts[i].HasRestaurantMention = len(mentions) > 0
	}

	rollups := aggregator.Aggregate(posts, startedAt)
	summary := aggregator.Summarize(posts, rollups, startedAt)

	// Local artifacts are peripheral: a failed write is logged and the run
	// carries on to the store upload.
	if _, err := p.Sink.WritePosts(posts, startedAt); err != nil {
		p.Logger.Error("Failed to write posts file", "error", err)
	}
	if _, err := p.Sink.WriteMetricsCSV(rollups, startedAt); err != nil {
		p.Logger.Error("Failed to write metrics file", "error", err)
	}
	if _, err := p.Sink.WriteSummary(summary, startedAt); err != nil {
		p.Logger.Error("Failed to write summary file", "error", err)
	}

	postsRes := p.Uploader.UploadPosts(ctx, posts)
	rollupsRes := p.Uploader.UploadRollups(ctx, rollups)

	p.report(summary, postsRes, rollupsRes)

	if err := p.Notifier.NotifyRunSummary(ctx, summary, postsRes, rollupsRes); err != nil {
		p.Logger.Error("Failed to deliver run report", "error", err)
	}

	return &summary, nil
}

// collectPosts gathers the run's posts, either from a local dataset file or
// by scraping every configured hashtag in order.
func (p *PipelineImpl) collectPosts(ctx context.Context, now time.Time) ([]domain.Post, error) {
	if file := p.Config.Scraper.DatasetFile; file != "" {
		return p.readDatasetFile(file, now)
	}

	// Checked before any remote call so a misconfigured run has no side
	// effects beyond the error report.
	if p.Config.Apify.Token == "" {
		return nil, apify.ErrMissingToken
	}

	var posts []domain.Post
	for _, hashtag := range p.Config.Scraper.Hashtags {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		records, status, err := p.Apify.ScrapeHashtag(ctx, hashtag, p.Config.Scraper.MaxPostsPerHashtag)
		if err != nil {
			p.Logger.Warn("Hashtag yielded no records",
				"hashtag", hashtag, "status", string(status), "error", err)
			continue
		}

		p.Logger.Info("Hashtag scraped", "hashtag", hashtag, "records", len(records))
		posts = append(posts, transformer.ToPosts(records, hashtag, domain.SourceApify, now)...)
	}

	return posts, nil
}

// readDatasetFile loads raw records from a local JSON export instead of
// calling the scrape backend. These posts carry no query hashtag and are
// tagged source=direct.
func (p *PipelineImpl) readDatasetFile(path string, now time.Time) ([]domain.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	records, err := domain.DecodeRawVideos(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset file: %w", err)
	}

	p.Logger.Info("Loaded dataset file", "path", path, "records", len(records))
	return transformer.ToPosts(records, "", domain.SourceDirect, now), nil
}

func (p *PipelineImpl) report(summary domain.RunSummary, posts, rollups domain.UploadResult) {
	p.Logger.Info("Pipeline run finished",
		"total_posts", formatter.FormatNumber(summary.TotalPosts),
		"posts_with_restaurants", formatter.FormatNumber(summary.PostsWithRestaurants),
		"extraction_rate", summary.ExtractionRate,
		"unique_restaurants", summary.UniqueRestaurants,
		"top_restaurant", summary.TopRestaurant,
		"posts_uploaded", posts.Uploaded,
		"posts_failed", posts.Failed,
		"rollups_uploaded", rollups.Uploaded,
		"rollups_failed", rollups.Failed,
	)
}
