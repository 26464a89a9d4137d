package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rodrigoasouza93/weather-cli/configs"
	"github.com/rodrigoasouza93/weather-cli/internal/forecast"
	"github.com/rodrigoasouza93/weather-cli/internal/geocode"
	"github.com/rodrigoasouza93/weather-cli/internal/infra/httpclient"
	"github.com/rodrigoasouza93/weather-cli/internal/infra/tracing"
	"github.com/rodrigoasouza93/weather-cli/internal/lookup"
	"github.com/rodrigoasouza93/weather-cli/internal/report"
	"github.com/rodrigoasouza93/weather-cli/internal/vo"
)

var version = "1.0.0"

const tracerName = "weather-cli"

// app carries the state shared by the commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	viper      *viper.Viper
	configPath string
	verbose    bool

	cfg      *configs.Cfg
	logger   *zap.Logger
	shutdown func(context.Context) error

	// lang localizes the error line; it follows --lang once that parses.
	lang vo.Language
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fallback, _ := vo.NewLanguage("ja")
	a := &app{stdout: stdout, stderr: stderr, viper: configs.New(), lang: fallback}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		if a.cfg == nil {
			// flag validation failed before setup; --lang may still have parsed
			if lang, langErr := vo.NewLanguage(a.viper.GetString("DEFAULT_LANG")); langErr == nil {
				a.lang = lang
			}
		}
		fmt.Fprintln(stderr, report.FormatError(err, a.lang))
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	var (
		city   string
		output string
	)

	root := &cobra.Command{
		Use:   "weather",
		Short: "Show the daily weather forecast for a city",
		Long: `weather resolves a city name with the Open-Meteo geocoding API and prints
its daily forecast (weather, min/max temperature, max precipitation
probability) as a text table. No API key is needed.`,
		Example: `  weather --city Tokyo --days 3
  weather --city 札幌 --days 5 --tz Asia/Tokyo
  weather --city Paris --lang en --tz auto --output json`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLookup(cmd.Context(), city, output)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "env style config file (default ./.env when present)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.Int("days", 3, "number of forecast days (1-16)")
	pf.String("lang", "ja", "geocoding and output language (BCP 47, e.g. ja, en)")
	pf.String("tz", "Asia/Tokyo", "forecast timezone (IANA name or auto)")
	_ = a.viper.BindPFlag("DEFAULT_DAYS", pf.Lookup("days"))
	_ = a.viper.BindPFlag("DEFAULT_LANG", pf.Lookup("lang"))
	_ = a.viper.BindPFlag("DEFAULT_TZ", pf.Lookup("tz"))

	root.Flags().StringVar(&city, "city", "", "city name, e.g. Tokyo, 大阪, 札幌")
	root.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	_ = root.MarkFlagRequired("city")

	root.AddCommand(a.newServeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// version needs neither config nor logger
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "weather %s\n", version)
		},
	}
}

// setup loads configuration and installs logging and tracing.
func (a *app) setup() error {
	cfg, err := configs.Load(a.viper, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if lang, err := vo.NewLanguage(cfg.DefaultLang); err == nil {
		a.lang = lang
	}

	logger, err := newLogger(cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	shutdown, err := tracing.Setup(cfg.ServiceName, cfg.ZipkinURL)
	if err != nil {
		return err
	}
	a.shutdown = shutdown
	return nil
}

func (a *app) close() {
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.shutdown(ctx); err != nil && a.logger != nil {
			a.logger.Warn("flushing traces", zap.Error(err))
		}
		cancel()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func (a *app) newService() *lookup.Service {
	client := httpclient.New(httpclient.Options{
		Timeout:   a.cfg.HTTPTimeout,
		UserAgent: a.cfg.UserAgent,
		Tracer:    otel.Tracer(tracerName),
		Logger:    a.logger.Named("http"),
	})
	return lookup.NewService(
		geocode.New(client, a.cfg.GeocodingURL, a.logger.Named("geocode")),
		forecast.New(client, a.cfg.ForecastURL, a.logger.Named("forecast")),
		otel.Tracer(tracerName),
		a.logger,
	)
}

func (a *app) runLookup(ctx context.Context, city, output string) error {
	if output != "text" && output != "json" {
		return fmt.Errorf("invalid output format %q (want text or json)", output)
	}

	q, err := lookup.NewQuery(city, a.cfg.DefaultDays, a.cfg.DefaultLang, a.cfg.DefaultTZ)
	if err != nil {
		return err
	}

	rep, err := a.newService().Lookup(ctx, q)
	if err != nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(a.stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(rep.Output)
	}
	_, err = fmt.Fprintln(a.stdout, rep.Render())
	return err
}
