package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/dotrender/internal/demo"
	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/inspect"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
		tick time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live inspector for the demo",
		Long: `Mount the demo application and expose the inspector over HTTP.

The demo counter is incremented on every tick so connected websocket
clients see a stream of frames.

Examples:
  dotrender serve
  dotrender serve --port=8080 --tick=500ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkTick(tick); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Inspector.Port = port
			}
			if host != "" {
				cfg.Inspector.Host = host
			}
			logger := newLogger(cfg)

			reg := prometheus.NewRegistry()
			s, err := demo.Mount(cmd.Context(), rendererOptions(cfg, logger, reg)...)
			if err != nil {
				return err
			}

			in := inspect.New(inspect.WithLogger(logger), inspect.WithGatherer(reg))
			defer in.Close()
			id := in.Track("demo", s.Doc, s.Root)

			srv := &http.Server{
				Addr:              cfg.InspectorAddress(),
				Handler:           in.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.ListenAndServe()
			}()

			printBanner()
			success("Inspector listening on http://%s", cfg.InspectorAddress())
			info("HTML:   /roots/%s", id)
			info("Stream: /ws")

			ticker := time.NewTicker(tick)
			defer ticker.Stop()

			// The document is only touched from this goroutine.
			for {
				select {
				case <-ticker.C:
					s.App.Increment()
				case err := <-serveErr:
					if err != nil && err != http.ErrServerClosed {
						return errors.New("I001").Wrap(err)
					}
					return nil
				case <-ctx.Done():
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					logger.Info("inspector shutting down")
					return srv.Shutdown(shutdownCtx)
				}
			}
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Interval between demo counter increments")

	return cmd
}

// checkTick rejects intervals time.NewTicker cannot use.
func checkTick(tick time.Duration) error {
	if tick <= 0 {
		return errors.New("C003").WithDetailf("--tick must be positive, got %s", tick)
	}
	return nil
}
