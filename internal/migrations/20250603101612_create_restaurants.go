package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateRestaurants, downCreateRestaurants)
}

func upCreateRestaurants(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS restaurants (
		name TEXT PRIMARY KEY,
		mentions BIGINT NOT NULL DEFAULT 0,
		posts BIGINT NOT NULL DEFAULT 0,
		total_engagement BIGINT NOT NULL DEFAULT 0,
		avg_engagement DOUBLE PRECISION NOT NULL DEFAULT 0,
		last_updated TIMESTAMPTZ NOT NULL
	);
	`)
	return err
}

func downCreateRestaurants(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS restaurants;`)
	return err
}
