// Package forecast requests daily forecasts from the Open-Meteo forecast API.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rodrigoasouza93/weather-cli/internal/dto"
	"github.com/rodrigoasouza93/weather-cli/internal/vo"
)

const DefaultURL = "https://api.open-meteo.com/v1/forecast"

var ErrNoDailyData = errors.New("forecast response has no daily data")

var dailyVariables = []string{
	"weather_code",
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_probability_max",
}

type JSONGetter interface {
	GetJSON(ctx context.Context, baseURL string, params url.Values, out any) error
}

type Fetcher struct {
	client  JSONGetter
	baseURL string
	logger  *zap.Logger
}

func New(client JSONGetter, baseURL string, logger *zap.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{client: client, baseURL: baseURL, logger: logger}
}

func (f *Fetcher) Fetch(ctx context.Context, lat, lon float64, days vo.Days, tz vo.Timezone) (dto.ForecastResponse, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 5, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 5, 64))
	params.Set("timezone", tz.Value())
	params.Set("forecast_days", strconv.Itoa(days.Value()))
	params.Set("daily", strings.Join(dailyVariables, ","))

	var resp dto.ForecastResponse
	if err := f.client.GetJSON(ctx, f.baseURL, params, &resp); err != nil {
		return dto.ForecastResponse{}, fmt.Errorf("fetching forecast: %w", err)
	}
	if resp.Daily == nil {
		return dto.ForecastResponse{}, ErrNoDailyData
	}

	f.logger.Debug("forecast fetched",
		zap.Int("days", len(resp.Daily.Time)),
		zap.String("timezone", resp.Timezone),
	)
	return resp, nil
}
