// Package uploader pushes processed posts and restaurant rollups to the
// remote store. Uploads are best-effort bulk loads: each record is upserted
// on its own, failures are counted and identified but never abort the rest
// of the batch.
package uploader

import (
	"context"

	"go.uber.org/fx"

	"github.com/thegab/tiktok-scraper/internal/domain"
	"github.com/thegab/tiktok-scraper/internal/repositories/post"
	"github.com/thegab/tiktok-scraper/internal/repositories/restaurant"
	"github.com/thegab/tiktok-scraper/pkg/logger"
)

// progressStep is how many successful writes pass between progress log lines.
const progressStep = 10

type Opts struct {
	fx.In

	PostRepo       post.Repository
	RestaurantRepo restaurant.Repository
	Logger         logger.Logger
}

type Uploader struct {
	postRepo       post.Repository
	restaurantRepo restaurant.Repository
	logger         logger.Logger
}

func New(opts Opts) *Uploader {
	return &Uploader{
		postRepo:       opts.PostRepo,
		restaurantRepo: opts.RestaurantRepo,
		logger:         opts.Logger.WithComponent("Uploader"),
	}
}

// UploadPosts upserts every post keyed by id. A post without an id cannot be
// upserted and is counted as failed without touching the store.
func (u *Uploader) UploadPosts(ctx context.Context, posts []domain.Post) domain.UploadResult {
	var res domain.UploadResult

	for _, p := range posts {
		if p.ID == "" {
			u.logger.Warn("Skipping post without id", "hashtag", p.Hashtag, "url", p.URL)
			res.Failed++
			continue
		}

		if err := u.postRepo.Upsert(ctx, p); err != nil {
			u.logger.Error("Failed to upload post", "id", p.ID, "error", err)
			res.Failed++
			res.FailedIDs = append(res.FailedIDs, p.ID)
			continue
		}

		res.Uploaded++
		if res.Uploaded%progressStep == 0 {
			u.logger.Info("Upload progress", "uploaded", res.Uploaded, "total", len(posts))
		}
	}

	u.logger.Info("Posts upload finished", "uploaded", res.Uploaded, "failed", res.Failed)
	return res
}

// UploadRollups upserts every rollup keyed by canonical restaurant name.
func (u *Uploader) UploadRollups(ctx context.Context, rollups []domain.RestaurantRollup) domain.UploadResult {
	var res domain.UploadResult

	for _, r := range rollups {
		if r.Name == "" {
			u.logger.Warn("Skipping rollup without name")
			res.Failed++
			continue
		}

		if err := u.restaurantRepo.Upsert(ctx, r); err != nil {
			u.logger.Error("Failed to upload rollup", "name", r.Name, "error", err)
			res.Failed++
			res.FailedIDs = append(res.FailedIDs, r.Name)
			continue
		}

		res.Uploaded++
		if res.Uploaded%progressStep == 0 {
			u.logger.Info("Upload progress", "uploaded", res.Uploaded, "total", len(rollups))
		}
	}

	u.logger.Info("Rollups upload finished", "uploaded", res.Uploaded, "failed", res.Failed)
	return res
}
