package httpserver

import (
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

func handleCustomError(ctx *fiber.Ctx, e *pgerr.ForecastError) error {
	log.Warn().
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var fe *pgerr.ForecastError
	if errors.As(err, &fe) {
		return handleCustomError(ctx, fe)
	}

	// Default 500 statuscode
	re := *pgerr.ErrInternalError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		re.StatusCode = fiberErr.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = fiberErr.Message
		if fiberErr.Code < fiber.StatusInternalServerError {
			return handleCustomError(ctx, &re)
		}
	}

	log.Error().
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, &re)
}
