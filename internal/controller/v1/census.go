package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"exusiai.dev/forecast-next/internal/pkg/cachectrl"
	"exusiai.dev/forecast-next/internal/pkg/middlewares"
	"exusiai.dev/forecast-next/internal/server/svr"
	"exusiai.dev/forecast-next/internal/service"
)

type Census struct {
	fx.In

	CensusService *service.Census
}

func RegisterCensus(v1 *svr.V1, c Census) {
	v1.Get("/districts/voters", c.GetVoters)

	census := v1.Group("/census")
	census.Get("/schema", c.GetSchema)
	census.Get("/:column", middlewares.ValidateCensusColumnAsParam, c.GetColumn)
}

// @Summary Get registered voters per district
// @Tags    Census
// @Produce json
// @Success 200 {array} int
// @Router  /v1/districts/voters [GET]
func (c *Census) GetVoters(ctx *fiber.Ctx) error {
	cachectrl.OptIn(ctx, time.Hour)
	return ctx.JSON(c.CensusService.Voters())
}

// @Summary Get census schema
// @Tags    Census
// @Produce json
// @Success 200 {array} forecast.CatalogEntry
// @Router  /v1/census/schema [GET]
func (c *Census) GetSchema(ctx *fiber.Ctx) error {
	cachectrl.OptIn(ctx, time.Hour)
	return ctx.JSON(c.CensusService.Schema())
}

// @Summary Get one census column
// @Tags    Census
// @Produce json
// @Param   column path string true "Census column key" example(hispanic)
// @Success 200 {array} number
// @Failure 400 {object} pgerr.ForecastError "Unknown census column"
// @Router  /v1/census/{column} [GET]
func (c *Census) GetColumn(ctx *fiber.Ctx) error {
	values, err := c.CensusService.Column(ctx.UserContext(), ctx.Params("column"))
	if err != nil {
		return err
	}
	cachectrl.OptIn(ctx, 10*time.Minute)
	return ctx.JSON(values)
}
