package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"exusiai.dev/forecast-next/internal/pkg/cachectrl"
	"exusiai.dev/forecast-next/internal/pkg/middlewares"
	"exusiai.dev/forecast-next/internal/server/svr"
	"exusiai.dev/forecast-next/internal/service"
)

type Model struct {
	fx.In

	ForecastService *service.Forecast
}

func RegisterModel(v1 *svr.V1, c Model) {
	v1.Get("/models", c.GetModels)
	v1.Get("/models/:key", middlewares.ValidateModelKeyAsParam, c.RunModel)
}

// @Summary List available models
// @Tags    Model
// @Produce json
// @Success 200 {array} forecast.CatalogEntry
// @Router  /v1/models [GET]
func (c *Model) GetModels(ctx *fiber.Ctx) error {
	return ctx.JSON(c.ForecastService.ListModels())
}

// @Summary Run a model
// @Tags    Model
// @Produce json
// @Param   key path string true "Model key" example(genderModel)
// @Success 200 {object} forecast.LensResult "or forecast.CombinedResult for combinedModel"
// @Failure 400 {object} pgerr.ForecastError "Invalid model key"
// @Failure 503 {object} pgerr.ForecastError "Census or poll data could not be read"
// @Router  /v1/models/{key} [GET]
func (c *Model) RunModel(ctx *fiber.Ctx) error {
	res, err := c.ForecastService.RunModel(ctx.UserContext(), ctx.Params("key"))
	if err != nil {
		return err
	}

	cachectrl.OptOut(ctx)
	return ctx.JSON(res)
}
