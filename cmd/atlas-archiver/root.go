package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/raoulx24/atlas-archiver/internal/config"
	"github.com/raoulx24/atlas-archiver/internal/logging"
)

var (
	// Global flags
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "atlas-archiver",
	Short: "Archive MongoDB Atlas backup snapshots to S3",
	Long: `atlas-archiver picks the scheduled Atlas cloud backup snapshot of the last
window, restores it as a downloadable archive, copies it into an S3 bucket
under the cluster name and deletes copies older than the retention period,
always keeping a minimum number of them.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the run.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
}

// loadConfig reads the YAML file, then the dotenv file and environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := config.LoadEnv(cfg, config.DotenvPath()); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// newLogger builds the run logger, tagged with a fresh run id.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if err != nil {
		return nil, err
	}
	return log.With("run_id", uuid.NewString()), nil
}
