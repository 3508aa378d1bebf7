package infra

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"exusiai.dev/forecast-next/internal/app/appconfig"
)

// NATS connects to the configured NATS server. It returns a nil connection
// when no URL is configured, in which case publishing is disabled.
func NATS(conf *appconfig.Config) (*nats.Conn, error) {
	if conf.NatsURL == "" {
		log.Info().Str("evt.name", "infra.nats.disabled").Msg("infra: nats: no url configured, forecast publishing disabled")
		return nil, nil
	}

	errorHandler := func(conn *nats.Conn, sub *nats.Subscription, err error) {
		evt := log.Error().
			Str("evt.name", "nats.error").
			Err(err).
			Str("conn.url", conn.ConnectedUrlRedacted())
		if sub != nil {
			evt = evt.Str("sub.subject", sub.Subject)
		}
		evt.Msg("nats error")
	}

	nc, err := nats.Connect(conf.NatsURL,
		nats.Name("forecast"),
		nats.PingInterval(time.Second*20),
		nats.ErrorHandler(errorHandler),
	)
	if err != nil {
		log.Error().Err(err).Msg("infra: nats: failed to connect to NATS")
		return nil, err
	}

	return nc, nil
}
