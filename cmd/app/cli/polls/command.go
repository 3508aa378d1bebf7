package polls

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/forecast-next/cmd/app/cli"
	"exusiai.dev/forecast-next/internal/service"
)

type CommandDeps struct {
	fx.In

	PollsterService *service.Pollster
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "polls",
		Usage: "fetch recent polls of the tracked contest from the poll aggregator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "state",
				Usage: "two-letter state code, defaults to FORECAST_POLLSTER_STATE",
			},
			&cli.StringFlag{
				Name:  "after",
				Usage: "only polls ending after this date (YYYY-MM-DD), defaults to FORECAST_POLLSTER_AFTER",
			},
		},
		Action: func(c *cli.Context) error {
			deps, stop, err := cliapp.Deps[CommandDeps](c.Context)
			if err != nil {
				return err
			}
			defer stop()

			state := c.String("state")
			if state == "" {
				state = deps.PollsterService.Config.PollsterState
			}
			after := c.String("after")
			if after == "" {
				after = deps.PollsterService.Config.PollsterAfter
			}

			polls, err := deps.PollsterService.FetchPolls(c.Context, after, state)
			if err != nil {
				return errors.Wrap(err, "failed to fetch polls")
			}
			for _, p := range polls {
				fmt.Printf("%s %s %s %s\n", p.Pollster, p.EndDate, formatValue(p.CandidateAVotes.Ptr()), formatValue(p.CandidateBVotes.Ptr()))
			}
			return nil
		},
	}
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
