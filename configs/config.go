package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "WEATHER"

type Cfg struct {
	GeocodingURL string        `mapstructure:"GEOCODING_URL"`
	ForecastURL  string        `mapstructure:"FORECAST_URL"`
	HTTPTimeout  time.Duration `mapstructure:"HTTP_TIMEOUT"`
	UserAgent    string        `mapstructure:"USER_AGENT"`
	DefaultLang  string        `mapstructure:"DEFAULT_LANG"`
	DefaultTZ    string        `mapstructure:"DEFAULT_TZ"`
	DefaultDays  int           `mapstructure:"DEFAULT_DAYS"`
	ZipkinURL    string        `mapstructure:"ZIPKIN_URL"`
	ServiceName  string        `mapstructure:"SERVICE_NAME"`
	ListenAddr   string        `mapstructure:"LISTEN_ADDR"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"GEOCODING_URL": "https://geocoding-api.open-meteo.com/v1/search",
	"FORECAST_URL":  "https://api.open-meteo.com/v1/forecast",
	"HTTP_TIMEOUT":  15 * time.Second,
	"USER_AGENT":    "weather-cli/1.0",
	"DEFAULT_LANG":  "ja",
	"DEFAULT_TZ":    "Asia/Tokyo",
	"DEFAULT_DAYS":  3,
	"ZIPKIN_URL":    "",
	"SERVICE_NAME":  "weather-cli",
	"LISTEN_ADDR":   ":8080",
	"LOG_LEVEL":     "warn",
}

// New returns a viper instance with defaults and WEATHER_* environment
// bindings. Callers may bind flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the env style file at path, if any, and unmarshals the merged
// settings. A missing default .env file is not an error; a missing explicit
// path is.
func Load(v *viper.Viper, path string) (*Cfg, error) {
	v.SetConfigType("env")
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Cfg
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
