package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTiktokPosts, downCreateTiktokPosts)
}

func upCreateTiktokPosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS tiktok_posts (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL DEFAULT '',
		caption TEXT NOT NULL DEFAULT '',
		likes BIGINT NOT NULL DEFAULT 0,
		comments BIGINT NOT NULL DEFAULT 0,
		shares BIGINT NOT NULL DEFAULT 0,
		views BIGINT NOT NULL DEFAULT 0,
		creator TEXT NOT NULL DEFAULT '',
		create_time TIMESTAMPTZ,
		hashtag TEXT NOT NULL DEFAULT '',
		restaurants JSONB NOT NULL DEFAULT '[]',
		has_restaurant_mention BOOLEAN NOT NULL DEFAULT FALSE,
		scraped_at TIMESTAMPTZ NOT NULL,
		source TEXT NOT NULL DEFAULT 'apify'
	);
	CREATE INDEX IF NOT EXISTS idx_tiktok_posts_hashtag ON tiktok_posts (hashtag);
	CREATE INDEX IF NOT EXISTS idx_tiktok_posts_has_mention ON tiktok_posts (has_restaurant_mention);
	`)
	return err
}

func downCreateTiktokPosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS tiktok_posts;`)
	return err
}
