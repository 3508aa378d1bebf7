package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/forecast-next/internal/constant"
	"exusiai.dev/forecast-next/internal/pkg/flog"
)

// RequestID copies the request id assigned by Logger into ctx.Locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := flog.IDFromFiberCtx(c); ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
