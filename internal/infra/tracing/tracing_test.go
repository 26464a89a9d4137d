package tracing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/rodrigoasouza93/weather-cli/internal/infra/tracing"
)

func TestSetup(t *testing.T) {
	t.Run("should install a working provider without exporter", func(t *testing.T) {
		shutdown, err := tracing.Setup("weather-test", "")
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(context.Background(), "noop")
		assert.True(t, span.SpanContext().IsValid())
		span.End()

		assert.IsType(t, propagation.TraceContext{}, otel.GetTextMapPropagator())
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("should export spans to zipkin on shutdown", func(t *testing.T) {
		var posts atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				posts.Add(1)
			}
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		shutdown, err := tracing.Setup("weather-test", srv.URL+"/api/v2/spans")
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(context.Background(), "exported")
		span.End()

		require.NoError(t, shutdown(context.Background()))
		assert.Equal(t, int32(1), posts.Load())
	})

	t.Run("should reject a malformed zipkin url", func(t *testing.T) {
		_, err := tracing.Setup("weather-test", "://bad")
		assert.Error(t, err)
	})
}
