package predict

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/forecast-next/cmd/app/cli"
	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/service"
)

type CommandDeps struct {
	fx.In

	ForecastService *service.Forecast
	Report          *service.Report
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "run a prediction model and print its per-district projections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "model key, one of the keys listed by GET /api/v1/models",
				Value:   forecast.KeyCombined,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the raw result as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			deps, stop, err := cliapp.Deps[CommandDeps](c.Context)
			if err != nil {
				return err
			}
			defer stop()

			return run(c, deps)
		},
	}
}

func run(c *cli.Context, deps CommandDeps) error {
	res, err := deps.ForecastService.RunModel(c.Context, c.String("model"))
	if err != nil {
		return errors.Wrap(err, "failed to run model")
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	switch r := res.(type) {
	case *forecast.CombinedResult:
		body, err := deps.Report.Render(r)
		if err != nil {
			return err
		}
		fmt.Print(string(body))
		fmt.Printf("Average %d %d, Delegates %d %d\n", r.Summary.AvgA, r.Summary.AvgB, r.Summary.DelegatesA, r.Summary.DelegatesB)
	case *forecast.LensResult:
		for _, p := range r.Projections {
			fmt.Printf("District %d %d %d\n", p.District, p.VotesA, p.VotesB)
		}
	}
	return nil
}
