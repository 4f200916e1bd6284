package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/phrazzld/worldbench/internal/config"
	"github.com/phrazzld/worldbench/internal/platform/logger"
)

func restoreGlobalProvider(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })
}

func TestSetupDisabled(t *testing.T) {
	restoreGlobalProvider(t)
	log, _ := logger.GetTestLogger(t)

	p, err := Setup(config.TracingConfig{ServiceName: "worldbench", SampleRate: 1}, log)
	require.NoError(t, err)

	_, span := p.TracerProvider().Tracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid(), "disabled tracing yields no-op spans")
	span.End()

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rec := httptest.NewRecorder()
	p.Middleware(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetupEnabledExportsSpansToLog(t *testing.T) {
	restoreGlobalProvider(t)
	log, buf := logger.GetTestLogger(t)

	p, err := Setup(config.TracingConfig{Enabled: true, ServiceName: "worldbench", SampleRate: 1}, log)
	require.NoError(t, err)
	assert.Same(t, p.TracerProvider(), otel.GetTracerProvider())

	_, span := otel.Tracer("test").Start(context.Background(), "DbRepository.GetWorld")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
	logger.AssertLogField(t, buf, "span", "DbRepository.GetWorld")
	logger.AssertLogField(t, buf, "component", "tracing")
}

func TestSetupZeroSampleRateDropsSpans(t *testing.T) {
	restoreGlobalProvider(t)
	log, buf := logger.GetTestLogger(t)

	p, err := Setup(config.TracingConfig{Enabled: true, ServiceName: "worldbench", SampleRate: 0}, log)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "dropped")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	assert.NotContains(t, buf.String(), `"span":"dropped"`)
}

func TestSetupInvalidSentryDSN(t *testing.T) {
	restoreGlobalProvider(t)

	_, err := Setup(config.TracingConfig{SentryDSN: "not-a-dsn", SampleRate: 1}, nil)
	assert.Error(t, err)
}
