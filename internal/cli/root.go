// Package cli implements the glovebin command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/glovebin"
	"github.com/hupe1980/glovebin/internal/config"
	"github.com/hupe1980/glovebin/observability"
)

// app carries state shared by all subcommands of one root command.
type app struct {
	cfgFile     string
	metricsFile string
	logLevel    string

	cfg      *config.Config
	logger   *glovebin.Logger
	registry *prometheus.Registry
	observer *observability.PrometheusObserver
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "glovebin",
		Short: "Binary GloVe embedding store",
		Long: `glovebin converts GloVe text embeddings into a compact binary store
(<prefix>.dict.bin and <prefix>.vec.bin) and serves lookups and cosine
distances from a memory-mapped view of it.

Text sources may be local paths or s3:// and minio:// URIs, optionally
compressed with gzip, zstd or lz4.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (default ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus text metrics to this file on exit")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConvertCommand(a))
	rootCmd.AddCommand(newDistanceCommand(a))
	rootCmd.AddCommand(newLookupCommand(a))
	rootCmd.AddCommand(newInfoCommand(a))
	rootCmd.AddCommand(newVerifyCommand(a))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.metricsFile != "" {
		cfg.Metrics.File = a.metricsFile
	}
	a.cfg = cfg

	a.logger, err = newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	a.observer, err = observability.NewPrometheusObserver(a.registry)
	return err
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.cfg == nil || a.cfg.Metrics.File == "" {
		return nil
	}
	if err := observability.WriteTextfile(a.cfg.Metrics.File, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	a.logger.Debug("metrics written", "file", a.cfg.Metrics.File)
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig) (*glovebin.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return glovebin.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return glovebin.NewLogger(slog.NewTextHandler(w, opts)), nil
}

// storeOptions maps the configuration onto façade options.
func (a *app) storeOptions() []glovebin.Option {
	return []glovebin.Option{
		glovebin.WithLogger(a.logger),
		glovebin.WithMetricsObserver(a.observer),
		glovebin.WithDimension(a.cfg.Store.Dimension),
		glovebin.WithWorkers(a.cfg.Store.Workers),
		glovebin.WithCache(a.cfg.Cache.Config()),
	}
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "glovebin %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
