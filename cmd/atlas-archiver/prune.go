package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/atlas-archiver/internal/fault"
)

var pruneDryRun bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired archive copies without archiving a new one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if pruneDryRun {
			cfg.Retention.DryRun = true
		}
		if err := cfg.ValidatePrune(); err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		job, err := buildJob(cfg, time.Now())
		if err != nil {
			return err
		}
		w, err := newWorker(cfg, log)
		if err != nil {
			return err
		}

		rep, err := w.Prune(cmd.Context(), job)
		if fault.IsFatal(err) {
			return err
		}
		log.Info("prune finished",
			"listed", rep.Listed,
			"planned", len(rep.Planned),
			"deleted", len(rep.Deleted),
			"failed", len(rep.Failed),
			"dry_run", rep.DryRun,
		)
		return nil
	},
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "only report what would be deleted")
	rootCmd.AddCommand(pruneCmd)
}
