package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rodrigoasouza93/weather-cli/internal/geocode"
	"github.com/rodrigoasouza93/weather-cli/internal/lookup"
	"github.com/rodrigoasouza93/weather-cli/internal/report"
	"github.com/rodrigoasouza93/weather-cli/internal/vo"
)

type Lookuper interface {
	Lookup(ctx context.Context, q lookup.Query) (report.Report, error)
}

// Defaults fill query parameters the client leaves out.
type Defaults struct {
	Days int
	Lang string
	TZ   string
}

type Webserver struct {
	OTELTracer trace.Tracer
	Service    Lookuper
	Defaults   Defaults
	Logger     *zap.Logger
}

func NewServer(otelTracer trace.Tracer, service Lookuper, defaults Defaults, logger *zap.Logger) *Webserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Webserver{
		OTELTracer: otelTracer,
		Service:    service,
		Defaults:   defaults,
		Logger:     logger,
	}
}

func (we *Webserver) CreateServer() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Get("/healthz", we.healthHandler)
	router.Get("/forecast/{city}", we.getForecastHandler)
	return router
}

func (we *Webserver) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (we *Webserver) getForecastHandler(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := we.OTELTracer.Start(ctx, "GET-FORECAST")
	defer span.End()

	days := we.Defaults.Days
	if raw := r.URL.Query().Get("days"); raw != "" {
		d, err := vo.ParseDays(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		days = d.Value()
	}
	lang := queryOr(r, "lang", we.Defaults.Lang)
	tz := queryOr(r, "tz", we.Defaults.TZ)

	q, err := lookup.NewQuery(chi.URLParam(r, "city"), days, lang, tz)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	rep, err := we.Service.Lookup(ctx, q)
	if err != nil {
		status := statusFor(err)
		we.Logger.Warn("lookup failed",
			zap.String("city", q.City.Value()),
			zap.Int("status", status),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, report.Describe(err, q.Lang), status)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(rep.Render() + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rep.Output)
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, geocode.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
