package server

import (
	"go.uber.org/fx"

	"exusiai.dev/forecast-next/internal/server/httpserver"
	"exusiai.dev/forecast-next/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups))
}
