package restaurant

import (
	"go.uber.org/fx"
)

var Module = fx.Module("restaurant_repository",
	fx.Provide(
		fx.Annotate(NewPgx, fx.As(new(Repository))),
	),
)
