package service

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"exusiai.dev/forecast-next/internal/app/appconfig"
	"exusiai.dev/forecast-next/internal/core/forecast"
)

// Publisher announces combined forecasts on NATS. With no connection it is a no-op.
type Publisher struct {
	NATS    *nats.Conn
	Subject string
}

func NewPublisher(conf *appconfig.Config, nc *nats.Conn) *Publisher {
	return &Publisher{
		NATS:    nc,
		Subject: conf.NatsSubject,
	}
}

func (s *Publisher) Publish(ctx context.Context, res *forecast.CombinedResult) error {
	if s == nil || s.NATS == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := nats.NewMsg(s.Subject)
	msg.Header.Set(nats.MsgIdHdr, res.RunID)

	var err error
	msg.Data, err = json.Marshal(res)
	if err != nil {
		return errors.Wrap(err, "failed to marshal combined forecast")
	}

	if err := s.NATS.PublishMsg(msg); err != nil {
		return errors.Wrapf(err, "failed to publish combined forecast to %s", s.Subject)
	}
	return nil
}
