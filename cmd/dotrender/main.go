package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/dotrender/internal/config"
	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/render"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┌┬┐┬─┐┌─┐┌┐┌┌┬┐┌─┐┬─┐
   │││ │ │ ├┬┘├┤ │││ ││├┤ ├┬┘
  ─┴┘└─┘ ┴ ┴└─└─┘┘└┘─┴┘└─┘┴└─
`

// configPath is the --config flag shared by every command.
var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "dotrender",
		Short: "Reactive stores rendered onto a host tree",
		Long: `dotrender mounts declarative element trees onto a host tree and keeps
them in sync with reactive stores.

Commands run against an in-memory headless document:

  • demo      play a scripted session and print the HTML after each step
  • serve     mount the demo and expose the live inspector
  • snapshot  render the demo and store its HTML in a file or S3 sink
  • bench     measure store update to patch latency`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: nearest dotrender.toml or dotrender.json)")

	rootCmd.AddCommand(
		demoCmd(),
		serveCmd(),
		snapshotCmd(),
		benchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		if e := errors.FromError(err, ""); e != nil && e.Code != "" {
			errors.Fprint(os.Stderr, e)
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads and validates the configuration selected by --config.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the slog logger the configuration asks for.
func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.Level()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// rendererOptions wires logging and, when enabled, metrics registered in
// reg.
func rendererOptions(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry) []render.Option {
	opts := []render.Option{render.WithLogger(logger)}
	if cfg.Metrics.Enabled && reg != nil {
		opts = append(opts, render.WithMetrics(render.NewMetrics(
			render.WithRegistry(reg),
			render.WithNamespace(cfg.Metrics.Namespace),
			render.WithSubsystem(cfg.Metrics.Subsystem),
		)))
	}
	return opts
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
