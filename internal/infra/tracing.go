package infra

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/fx"

	"exusiai.dev/forecast-next/internal/app/appconfig"
	"exusiai.dev/forecast-next/internal/pkg/bininfo"
	"exusiai.dev/forecast-next/internal/pkg/observability"
)

// Tracing installs the global tracer provider when tracing is enabled. The
// returned provider is nil otherwise; otel then falls back to its no-op tracer.
func Tracing(lc fx.Lifecycle, conf *appconfig.Config) (*tracesdk.TracerProvider, error) {
	if !conf.TracingEnabled {
		return nil, nil
	}

	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(conf.TracingSampleRate))),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(observability.ServiceName),
			semconv.ServiceVersionKey.String(bininfo.Version),
			attribute.String("environment", conf.AppContext.Env.String()),
		)),
	}

	for _, name := range conf.TracingExporters {
		var exporter tracesdk.SpanExporter
		var err error
		switch name {
		case "otlp":
			exporter, err = otlptracegrpc.New(context.Background())
		case "stdout":
			exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		default:
			return nil, errors.Errorf("infra: tracing: unknown exporter %q", name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "infra: tracing: failed to create %s exporter", name)
		}
		opts = append(opts, tracesdk.WithBatcher(exporter))
		log.Info().Str("exporter", name).Msg("infra: tracing: exporter enabled")
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return tp, nil
}
