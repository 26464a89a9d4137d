package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigoasouza93/weather-cli/internal/geocode"
	"github.com/rodrigoasouza93/weather-cli/internal/infra/httpclient"
	"github.com/rodrigoasouza93/weather-cli/internal/vo"
)

func mustCity(t *testing.T, name string) vo.City {
	t.Helper()
	c, err := vo.NewCity(name)
	require.NoError(t, err)
	return c
}

func mustLang(t *testing.T, tag string) vo.Language {
	t.Helper()
	l, err := vo.NewLanguage(tag)
	require.NoError(t, err)
	return l
}

func TestSearch(t *testing.T) {
	t.Run("should return the first result", func(t *testing.T) {
		var got url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Query()
			_, _ = w.Write([]byte(`{"results":[
				{"name":"札幌市","latitude":43.06417,"longitude":141.34694,"country_code":"JP","admin1":"北海道"},
				{"name":"Sapporo","latitude":1,"longitude":2,"country_code":"US"}
			]}`))
		}))
		defer srv.Close()

		g := geocode.New(httpclient.New(httpclient.Options{}), srv.URL, nil)
		loc, err := g.Search(context.Background(), mustCity(t, "札幌"), mustLang(t, "ja"))

		require.NoError(t, err)
		assert.Equal(t, "札幌市", loc.Name)
		assert.InDelta(t, 43.06417, loc.Latitude, 1e-9)
		assert.Equal(t, "札幌市, 北海道 (JP)", loc.Label())
		assert.Equal(t, "札幌", got.Get("name"))
		assert.Equal(t, "1", got.Get("count"))
		assert.Equal(t, "ja", got.Get("language"))
		assert.Equal(t, "json", got.Get("format"))
	})

	t.Run("should return not found when results are missing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
		}))
		defer srv.Close()

		g := geocode.New(httpclient.New(httpclient.Options{}), srv.URL, nil)
		_, err := g.Search(context.Background(), mustCity(t, "Atlantis"), mustLang(t, "en"))

		assert.ErrorIs(t, err, geocode.ErrLocationNotFound)
		assert.EqualError(t, err, "location not found: Atlantis")
	})

	t.Run("should return not found when results are empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		g := geocode.New(httpclient.New(httpclient.Options{}), srv.URL, nil)
		_, err := g.Search(context.Background(), mustCity(t, "Atlantis"), mustLang(t, "en"))

		assert.ErrorIs(t, err, geocode.ErrLocationNotFound)
	})

	t.Run("should propagate upstream status errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		g := geocode.New(httpclient.New(httpclient.Options{}), srv.URL, nil)
		_, err := g.Search(context.Background(), mustCity(t, "Tokyo"), mustLang(t, "ja"))

		var statusErr *httpclient.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
		assert.False(t, errors.Is(err, geocode.ErrLocationNotFound))
	})
}

func TestLabel(t *testing.T) {
	t.Run("should omit admin1 when empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[{"name":"Tokyo","latitude":35.6895,"longitude":139.69171,"country_code":"JP"}]}`))
		}))
		defer srv.Close()

		g := geocode.New(httpclient.New(httpclient.Options{}), srv.URL, nil)
		loc, err := g.Search(context.Background(), mustCity(t, "Tokyo"), mustLang(t, "en"))

		require.NoError(t, err)
		assert.Equal(t, "Tokyo (JP)", loc.Label())
	})
}
