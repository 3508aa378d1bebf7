package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"exusiai.dev/forecast-next/internal/model"
	"exusiai.dev/forecast-next/internal/pkg/rekuest"
	"exusiai.dev/forecast-next/internal/server/svr"
	"exusiai.dev/forecast-next/internal/service"
)

type Poll struct {
	fx.In

	PollsterService *service.Pollster
}

func RegisterPoll(v1 *svr.V1, c Poll) {
	v1.Get("/polls", c.GetPolls)
}

// @Summary Get recent aggregator polls
// @Tags    Poll
// @Produce json
// @Param   after query string false "Only polls ending after this date" example(2016-04-20)
// @Param   state query string false "Two letter state code" example(CA)
// @Success 200 {array} model.RawPoll
// @Failure 400 {object} pgerr.ForecastError "Invalid query"
// @Failure 503 {object} pgerr.ForecastError "Poll aggregator unavailable"
// @Router  /v1/polls [GET]
func (c *Poll) GetPolls(ctx *fiber.Ctx) error {
	var q model.PollQuery
	if err := rekuest.ValidQuery(ctx, &q); err != nil {
		return err
	}

	var (
		polls []*model.RawPoll
		err   error
	)
	if q.After == "" && q.State == "" {
		polls, err = c.PollsterService.RecentPolls(ctx.UserContext())
	} else {
		conf := c.PollsterService.Config
		after, state := conf.PollsterAfter, conf.PollsterState
		if q.After != "" {
			after = q.After
		}
		if q.State != "" {
			state = q.State
		}
		polls, err = c.PollsterService.FetchPolls(ctx.UserContext(), after, state)
	}
	if err != nil {
		return err
	}

	return ctx.JSON(polls)
}
