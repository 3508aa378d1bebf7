package importer

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/forecast-next/cmd/app/cli"
	"exusiai.dev/forecast-next/internal/repo"
)

type CommandDeps struct {
	fx.In

	CensusRepo *repo.Census
	PollRepo   *repo.Poll
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "copy legacy census.db and polls.db files into the configured store",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  "census",
				Usage: "legacy SQLite file holding the Census table",
				Value: "census.db",
			},
			&cli.PathFlag{
				Name:  "polls",
				Usage: "legacy SQLite file holding the Polls table",
				Value: "polls.db",
			},
		},
		Action: func(c *cli.Context) error {
			deps, stop, err := cliapp.Deps[CommandDeps](c.Context)
			if err != nil {
				return err
			}
			defer stop()

			return run(c.Context, deps, c.Path("census"), c.Path("polls"))
		},
	}
}
