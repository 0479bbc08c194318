package fx

import (
	"github.com/thegab/tiktok-scraper/internal/repositories/post"
	"github.com/thegab/tiktok-scraper/internal/repositories/restaurant"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
	restaurant.Module,
)
