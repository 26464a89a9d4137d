// Package geocode resolves a city name to coordinates with the Open-Meteo
// geocoding API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/rodrigoasouza93/weather-cli/internal/dto"
	"github.com/rodrigoasouza93/weather-cli/internal/vo"
)

const DefaultURL = "https://geocoding-api.open-meteo.com/v1/search"

var ErrLocationNotFound = errors.New("location not found")

// NotFoundError names the city that produced no geocoding results.
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return ErrLocationNotFound.Error() + ": " + e.City
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrLocationNotFound
}

// JSONGetter is satisfied by *httpclient.Client.
type JSONGetter interface {
	GetJSON(ctx context.Context, baseURL string, params url.Values, out any) error
}

type Geocoder struct {
	client  JSONGetter
	baseURL string
	logger  *zap.Logger
}

func New(client JSONGetter, baseURL string, logger *zap.Logger) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Geocoder{client: client, baseURL: baseURL, logger: logger}
}

// Search returns the best match for city.
func (g *Geocoder) Search(ctx context.Context, city vo.City, lang vo.Language) (dto.Location, error) {
	params := url.Values{}
	params.Set("name", city.Value())
	params.Set("count", "1")
	params.Set("language", lang.Code())
	params.Set("format", "json")

	var resp dto.GeocodingResponse
	if err := g.client.GetJSON(ctx, g.baseURL, params, &resp); err != nil {
		return dto.Location{}, fmt.Errorf("geocoding %q: %w", city.Value(), err)
	}
	if len(resp.Results) == 0 {
		return dto.Location{}, &NotFoundError{City: city.Value()}
	}

	loc := resp.Results[0]
	g.logger.Debug("geocoded",
		zap.String("city", city.Value()),
		zap.String("name", loc.Name),
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lon", loc.Longitude),
	)
	return loc, nil
}
