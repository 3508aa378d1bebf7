package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/forecast-next/internal/app"
	"exusiai.dev/forecast-next/internal/app/appcontext"
)

// Start builds the CLI flavour of the fx graph, populates deps and starts it.
// The returned stop func tears the graph down again.
func Start(ctx context.Context, deps any) (stop func(), err error) {
	fxApp := app.New(appcontext.Declare(appcontext.EnvCLI), fx.Populate(deps))
	if err := fxApp.Start(ctx); err != nil {
		return nil, err
	}
	return func() {
		if err := fxApp.Stop(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to stop cli app")
		}
	}, nil
}

// Deps is the depsFn helper used by commands: the graph is only built once
// the command actually runs.
func Deps[T any](ctx context.Context) (T, func(), error) {
	var deps T
	stop, err := Start(ctx, &deps)
	return deps, stop, err
}
