package post

import (
	"context"
	"errors"

	"github.com/thegab/tiktok-scraper/internal/domain"
)

var ErrNotFound = errors.New("post not found")

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Upsert inserts the post or replaces the stored row carrying the same
	// id, so re-running the pipeline never creates duplicates.
	Upsert(ctx context.Context, post domain.Post) error

	// GetByID returns the stored post with the given id.
	GetByID(ctx context.Context, id string) (*domain.Post, error)
}
