package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/rodrigoasouza93/weather-cli/internal/dto"
	"github.com/rodrigoasouza93/weather-cli/internal/forecast"
	"github.com/rodrigoasouza93/weather-cli/internal/geocode"
	"github.com/rodrigoasouza93/weather-cli/internal/infra/web"
	"github.com/rodrigoasouza93/weather-cli/internal/lookup"
	"github.com/rodrigoasouza93/weather-cli/internal/report"
)

type stubService struct {
	got lookup.Query
	err error
}

func (s *stubService) Lookup(ctx context.Context, q lookup.Query) (report.Report, error) {
	s.got = q
	if s.err != nil {
		return report.Report{}, s.err
	}
	hi := 25.0
	fc := dto.ForecastResponse{Daily: &dto.DailySeries{
		Time:           []string{"2024-05-01"},
		TemperatureMax: []*float64{&hi},
	}}
	return report.Build(q.City, dto.Location{Name: "Tokyo", CountryCode: "JP"}, fc, q.Lang, q.Timezone)
}

func newServer(svc *stubService) http.Handler {
	defaults := web.Defaults{Days: 3, Lang: "ja", TZ: "Asia/Tokyo"}
	return web.NewServer(noop.NewTracerProvider().Tracer("test"), svc, defaults, nil).CreateServer()
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetForecastHandler(t *testing.T) {
	t.Run("should apply defaults and return json", func(t *testing.T) {
		svc := &stubService{}
		rec := do(t, newServer(svc), "/forecast/Tokyo")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, 3, svc.got.Days.Value())
		assert.Equal(t, "ja", svc.got.Lang.Code())
		assert.Equal(t, "Asia/Tokyo", svc.got.Timezone.Value())

		var out dto.ForecastOutput
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, "Tokyo", out.City)
		assert.Equal(t, "Tokyo (JP)", out.Label)
		require.Len(t, out.Days, 1)
		assert.Equal(t, "2024-05-01", out.Days[0].Date)
	})

	t.Run("should honour query parameters", func(t *testing.T) {
		svc := &stubService{}
		rec := do(t, newServer(svc), "/forecast/Paris?days=5&lang=fr&tz=Europe/Paris")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Paris", svc.got.City.Value())
		assert.Equal(t, 5, svc.got.Days.Value())
		assert.Equal(t, "fr", svc.got.Lang.Code())
		assert.Equal(t, "Europe/Paris", svc.got.Timezone.Value())
	})

	t.Run("should render the text table on request", func(t *testing.T) {
		rec := do(t, newServer(&stubService{}), "/forecast/Tokyo?format=text&lang=en")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "Location: Tokyo (JP)"))
		assert.Contains(t, rec.Body.String(), "25.0°C")
	})

	t.Run("should return 422 when days is invalid", func(t *testing.T) {
		rec := do(t, newServer(&stubService{}), "/forecast/Tokyo?days=40")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("should return 422 when timezone is invalid", func(t *testing.T) {
		rec := do(t, newServer(&stubService{}), "/forecast/Tokyo?tz=Nowhere/Land")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("should return 404 when the city is unknown", func(t *testing.T) {
		svc := &stubService{err: &geocode.NotFoundError{City: "Atlantis"}}
		rec := do(t, newServer(svc), "/forecast/Atlantis")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "場所が見つかりませんでした: Atlantis")
	})

	t.Run("should return 502 when upstream fails", func(t *testing.T) {
		svc := &stubService{err: forecast.ErrNoDailyData}
		rec := do(t, newServer(svc), "/forecast/Tokyo")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("should return 504 when upstream times out", func(t *testing.T) {
		svc := &stubService{err: errors.Join(errors.New("requesting"), context.DeadlineExceeded)}
		rec := do(t, newServer(svc), "/forecast/Tokyo")
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	rec := do(t, newServer(&stubService{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
