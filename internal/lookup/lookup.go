// Package lookup runs the geocode, forecast and report stages for one city.
package lookup

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rodrigoasouza93/weather-cli/internal/dto"
	"github.com/rodrigoasouza93/weather-cli/internal/report"
	"github.com/rodrigoasouza93/weather-cli/internal/vo"
	"github.com/rodrigoasouza93/weather-cli/internal/weathercode"
)

type Geocoder interface {
	Search(ctx context.Context, city vo.City, lang vo.Language) (dto.Location, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64, days vo.Days, tz vo.Timezone) (dto.ForecastResponse, error)
}

type Query struct {
	City     vo.City
	Days     vo.Days
	Lang     vo.Language
	Timezone vo.Timezone
}

// NewQuery validates raw user input.
func NewQuery(city string, days int, lang, tz string) (Query, error) {
	c, err := vo.NewCity(city)
	if err != nil {
		return Query{}, err
	}
	d, err := vo.NewDays(days)
	if err != nil {
		return Query{}, err
	}
	l, err := vo.NewLanguage(lang)
	if err != nil {
		return Query{}, err
	}
	z, err := vo.NewTimezone(tz)
	if err != nil {
		return Query{}, err
	}
	return Query{City: c, Days: d, Lang: l, Timezone: z}, nil
}

type Service struct {
	geocoder Geocoder
	fetcher  Fetcher
	tracer   trace.Tracer
	logger   *zap.Logger
}

func NewService(geocoder Geocoder, fetcher Fetcher, tracer trace.Tracer, logger *zap.Logger) *Service {
	if tracer == nil {
		tracer = otel.Tracer("weather-cli/lookup")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{geocoder: geocoder, fetcher: fetcher, tracer: tracer, logger: logger}
}

func (s *Service) Lookup(ctx context.Context, q Query) (report.Report, error) {
	ctx, span := s.tracer.Start(ctx, "lookup", trace.WithAttributes(
		attribute.String("city", q.City.Value()),
		attribute.Int("days", q.Days.Value()),
		attribute.String("lang", q.Lang.Code()),
		attribute.String("timezone", q.Timezone.Value()),
	))
	defer span.End()

	loc, err := s.geocode(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocode failed")
		return report.Report{}, err
	}

	fc, err := s.forecast(ctx, q, loc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forecast failed")
		return report.Report{}, err
	}

	if fc.Daily != nil {
		for _, code := range fc.Daily.WeatherCode {
			if code != nil && !weathercode.Known(*code) {
				s.logger.Warn("unknown weather code", zap.Int("code", *code))
			}
		}
	}

	r, err := report.Build(q.City, loc, fc, q.Lang, q.Timezone)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "report failed")
		return report.Report{}, err
	}
	return r, nil
}

func (s *Service) geocode(ctx context.Context, q Query) (dto.Location, error) {
	ctx, span := s.tracer.Start(ctx, "geocode")
	defer span.End()

	s.logger.Debug("geocoding", zap.String("city", q.City.Value()), zap.String("lang", q.Lang.Code()))
	loc, err := s.geocoder.Search(ctx, q.City, q.Lang)
	if err != nil {
		span.RecordError(err)
		return dto.Location{}, err
	}
	span.SetAttributes(
		attribute.String("location", loc.Label()),
		attribute.Float64("latitude", loc.Latitude),
		attribute.Float64("longitude", loc.Longitude),
	)
	return loc, nil
}

func (s *Service) forecast(ctx context.Context, q Query, loc dto.Location) (dto.ForecastResponse, error) {
	ctx, span := s.tracer.Start(ctx, "forecast")
	defer span.End()

	s.logger.Debug("fetching forecast",
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lon", loc.Longitude),
		zap.Int("days", q.Days.Value()),
	)
	fc, err := s.fetcher.Fetch(ctx, loc.Latitude, loc.Longitude, q.Days, q.Timezone)
	if err != nil {
		span.RecordError(err)
		return dto.ForecastResponse{}, err
	}
	return fc, nil
}
