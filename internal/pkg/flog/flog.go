// Package flog carries a request-scoped zerolog logger and request id on the
// user context of a fiber.Ctx.
package flog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type idKey struct{}

// FromFiberCtx returns the request logger, or the disabled logger if none was injected.
func FromFiberCtx(c *fiber.Ctx) *zerolog.Logger {
	return log.Ctx(c.UserContext())
}

// NewHandlerMiddleware injects a copy of l into every request.
func NewHandlerMiddleware(l zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// copy so UpdateContext in later handlers stays request-local
		rl := l.With().Logger()
		c.SetUserContext(rl.WithContext(c.UserContext()))
		return c.Next()
	}
}

// RequestFieldsHandler adds the remote address, method, path and user agent of
// the request to its logger.
func RequestFieldsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		FromFiberCtx(c).UpdateContext(func(zc zerolog.Context) zerolog.Context {
			return zc.
				Str("ip", c.IP()).
				Str("method", c.Method()).
				Str("url", c.Path()).
				Str("user_agent", c.Get(fiber.HeaderUserAgent))
		})
		return c.Next()
	}
}

// IDFromFiberCtx returns the request id of c, if one was assigned.
func IDFromFiberCtx(c *fiber.Ctx) (xid.ID, bool) {
	if c == nil {
		return xid.NilID(), false
	}
	return IDFromCtx(c.UserContext())
}

func IDFromCtx(ctx context.Context) (xid.ID, bool) {
	id, ok := ctx.Value(idKey{}).(xid.ID)
	return id, ok
}

func CtxWithID(ctx context.Context, id xid.ID) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// RequestIDHandler assigns an xid to the request, readable with IDFromFiberCtx.
// The id is logged under fieldKey and echoed in headerName when those are set.
func RequestIDHandler(fieldKey, headerName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IDFromFiberCtx(c)
		if !ok {
			id = xid.New()
			c.SetUserContext(CtxWithID(c.UserContext(), id))
		}
		if fieldKey != "" {
			FromFiberCtx(c).UpdateContext(func(zc zerolog.Context) zerolog.Context {
				return zc.Str(fieldKey, id.String())
			})
		}
		if headerName != "" {
			c.Set(headerName, id.String())
		}
		return c.Next()
	}
}

// AccessHandler calls f with the handling duration after each request.
func AccessHandler(f func(c *fiber.Ctx, duration time.Duration)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		f(c, time.Since(start))
		return err
	}
}
