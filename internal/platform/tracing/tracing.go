// Package tracing configures OpenTelemetry span collection and optional
// Sentry error and performance reporting.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/phrazzld/worldbench/internal/config"
)

// SentryFlushTimeout bounds how long Shutdown waits for buffered Sentry events.
const SentryFlushTimeout = 2 * time.Second

// Provider owns the process-wide tracing setup.
type Provider struct {
	sdk    *sdktrace.TracerProvider
	tp     trace.TracerProvider
	sentry bool
	logger *slog.Logger
}

// Setup builds a Provider from cfg and installs its tracer provider as the
// global one. With tracing disabled spans are no-ops. When enabled, sampled
// spans are exported to logger at debug level. A non-empty SentryDSN also
// initializes the Sentry client.
func Setup(cfg config.TracingConfig, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Provider{
		tp:     noop.NewTracerProvider(),
		logger: logger.With(slog.String("component", "tracing")),
	}

	if cfg.Enabled {
		res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))
		p.sdk = sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
			sdktrace.WithBatcher(NewLogExporter(p.logger)),
		)
		p.tp = p.sdk
	}
	otel.SetTracerProvider(p.tp)

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    cfg.Enabled,
			TracesSampleRate: cfg.SampleRate,
			ServerName:       cfg.ServiceName,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
		p.sentry = true
	}

	p.logger.Info("tracing configured",
		slog.Bool("otel_enabled", cfg.Enabled),
		slog.Bool("sentry_enabled", p.sentry),
		slog.Float64("sample_rate", cfg.SampleRate))
	return p, nil
}

// TracerProvider returns the provider installed by Setup.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tp
}

// Middleware wraps next with the Sentry HTTP handler when Sentry is enabled.
// Panics are re-raised so the router's recoverer still answers the request.
func (p *Provider) Middleware(next http.Handler) http.Handler {
	if !p.sentry {
		return next
	}
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(next)
}

// Shutdown flushes buffered spans and Sentry events.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.sdk != nil {
		if err := p.sdk.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down tracer provider: %w", err))
		}
	}
	if p.sentry && !sentry.Flush(SentryFlushTimeout) {
		errs = append(errs, errors.New("timed out flushing sentry events"))
	}
	return errors.Join(errs...)
}
