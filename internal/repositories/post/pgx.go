package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thegab/tiktok-scraper/internal/domain"
	"github.com/thegab/tiktok-scraper/internal/repositories"
	"github.com/thegab/tiktok-scraper/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

var postColumns = []string{
	"id", "url", "caption", "likes", "comments", "shares", "views",
	"creator", "create_time", "hashtag", "restaurants",
	"has_restaurant_mention", "scraped_at", "source",
}

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Upsert writes the post keyed by id. The restaurants column stores the
// mention list as a JSON array, an empty list rather than NULL when nothing
// matched.
func (p *Pgx) Upsert(ctx context.Context, post domain.Post) error {
	mentions := post.Restaurants
	if mentions == nil {
		mentions = []domain.RestaurantMention{}
	}
	restaurants, err := json.Marshal(mentions)
	if err != nil {
		return fmt.Errorf("failed to encode restaurant mentions: %w", err)
	}

	query, args, err := repositories.SqBuilder.
		Insert("tiktok_posts").
		Columns(postColumns...).
		Values(
			post.ID, post.URL, post.Caption, post.Likes, post.Comments,
			post.Shares, post.Views, post.Creator, post.CreateTime,
			post.Hashtag, restaurants, post.HasRestaurantMention,
			post.ScrapedAt, string(post.Source),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			url = EXCLUDED.url,
			caption = EXCLUDED.caption,
			likes = EXCLUDED.likes,
			comments = EXCLUDED.comments,
			shares = EXCLUDED.shares,
			views = EXCLUDED.views,
			creator = EXCLUDED.creator,
			create_time = EXCLUDED.create_time,
			hashtag = EXCLUDED.hashtag,
			restaurants = EXCLUDED.restaurants,
			has_restaurant_mention = EXCLUDED.has_restaurant_mention,
			scraped_at = EXCLUDED.scraped_at,
			source = EXCLUDED.source`).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert post %s: %w", post.ID, err)
	}
	return nil
}

// GetByID returns the stored post with the given id.
func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns...).
		From("tiktok_posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var (
		post        domain.Post
		restaurants []byte
		source      string
	)
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&post.ID, &post.URL, &post.Caption, &post.Likes, &post.Comments,
		&post.Shares, &post.Views, &post.Creator, &post.CreateTime,
		&post.Hashtag, &restaurants, &post.HasRestaurantMention,
		&post.ScrapedAt, &source,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	post.Source = domain.Source(source)
	if len(restaurants) > 0 {
		if err := json.Unmarshal(restaurants, &post.Restaurants); err != nil {
			return nil, fmt.Errorf("failed to decode restaurant mentions: %w", err)
		}
	}
	return &post, nil
}
