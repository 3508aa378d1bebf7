package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/forecast-next/cmd/app/cli/importer"
	"exusiai.dev/forecast-next/cmd/app/cli/polls"
	"exusiai.dev/forecast-next/cmd/app/cli/predict"
	"exusiai.dev/forecast-next/cmd/app/server"
	"exusiai.dev/forecast-next/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "forecast",
		Description: "Demographic vote prediction engine for a two-candidate primary. Built with Go, fiber, bun and go.uber.org/fx. Uses Redis for caching and locking and NATS for forecast events.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			predict.Command(),
			importer.Command(),
			polls.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
