// Package httpclient issues the JSON GET requests behind the geocoding and
// forecast lookups.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "weather-cli/1.0"
)

// StatusError is returned for any response other than 200 OK.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

type Options struct {
	Timeout   time.Duration
	UserAgent string
	Transport http.RoundTripper
	Tracer    trace.Tracer
	Logger    *zap.Logger
}

type Client struct {
	http      *http.Client
	userAgent string
	tracer    trace.Tracer
	logger    *zap.Logger
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer("weather-cli/httpclient")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		http:      &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		userAgent: opts.UserAgent,
		tracer:    opts.Tracer,
		logger:    opts.Logger,
	}
}

// GetJSON sends GET baseURL?params and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, baseURL string, params url.Values, out any) error {
	reqURL := baseURL
	if len(params) > 0 {
		reqURL = baseURL + "?" + params.Encode()
	}

	ctx, span := c.tracer.Start(ctx, "GET "+spanTarget(baseURL), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("http.method", http.MethodGet), attribute.String("http.url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "error creating request")
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("requesting %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("http request",
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		err := &StatusError{StatusCode: resp.StatusCode, URL: reqURL}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "error decoding response")
		return fmt.Errorf("decoding response from %s: %w", reqURL, err)
	}
	return nil
}

func spanTarget(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host + u.Path
}
