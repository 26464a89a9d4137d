package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/rodrigoasouza93/weather-cli/internal/infra/web"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve forecasts over HTTP",
		Long: `serve exposes the lookup as GET /forecast/{city}?days=&lang=&tz=&format=json|text.
The --days, --lang and --tz flags set the defaults for omitted parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = a.viper.BindPFlag("LISTEN_ADDR", cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	defaults := web.Defaults{Days: a.cfg.DefaultDays, Lang: a.cfg.DefaultLang, TZ: a.cfg.DefaultTZ}
	server := web.NewServer(otel.Tracer(tracerName), a.newService(), defaults, a.logger.Named("web"))

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           server.CreateServer(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
