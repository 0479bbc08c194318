package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thegab/tiktok-scraper/internal/domain"
	"github.com/thegab/tiktok-scraper/internal/repositories"
	"github.com/thegab/tiktok-scraper/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("RestaurantRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Upsert writes the rollup, replacing the previous run's row for the same
// restaurant. Rollups are recomputed from scratch each run, so the stored
// values are the latest run's, not a merge.
func (r *Pgx) Upsert(ctx context.Context, rollup domain.RestaurantRollup) error {
	query, args, err := repositories.SqBuilder.
		Insert("restaurants").
		Columns("name", "mentions", "posts", "total_engagement", "avg_engagement", "last_updated").
		Values(
			rollup.Name, rollup.MentionCount, rollup.PostCount,
			rollup.TotalEngagement, rollup.AvgEngagement, rollup.LastUpdated,
		).
		Suffix(`ON CONFLICT (name) DO UPDATE SET
			mentions = EXCLUDED.mentions,
			posts = EXCLUDED.posts,
			total_engagement = EXCLUDED.total_engagement,
			avg_engagement = EXCLUDED.avg_engagement,
			last_updated = EXCLUDED.last_updated`).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := r.pg.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert restaurant %s: %w", rollup.Name, err)
	}
	return nil
}

// GetByName returns the stored rollup for the given canonical name.
func (r *Pgx) GetByName(ctx context.Context, name string) (*domain.RestaurantRollup, error) {
	query, args, err := repositories.SqBuilder.
		Select("name", "mentions", "posts", "total_engagement", "avg_engagement", "last_updated").
		From("restaurants").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var rollup domain.RestaurantRollup
	err = r.pg.QueryRow(ctx, query, args...).Scan(
		&rollup.Name, &rollup.MentionCount, &rollup.PostCount,
		&rollup.TotalEngagement, &rollup.AvgEngagement, &rollup.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant by name: %w", err)
	}
	return &rollup, nil
}
