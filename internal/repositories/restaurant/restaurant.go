package restaurant

import (
	"context"
	"errors"

	"github.com/thegab/tiktok-scraper/internal/domain"
)

var ErrNotFound = errors.New("restaurant not found")

//go:generate go run go.uber.org/mock/mockgen -source=restaurant.go -destination=mocks/mock.go
type Repository interface {
	// Upsert writes the rollup keyed by canonical restaurant name.
	Upsert(ctx context.Context, rollup domain.RestaurantRollup) error

	// GetByName returns the stored rollup for the given canonical name.
	GetByName(ctx context.Context, name string) (*domain.RestaurantRollup, error)
}
