package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/atlas-archiver/internal/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Archive the last window's snapshot and apply retention",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		started := time.Now()
		job, err := buildJob(cfg, started)
		if err != nil {
			return err
		}
		w, err := newWorker(cfg, log)
		if err != nil {
			return err
		}

		log.Info("archive run started", "cluster", job.Cluster, "window", job.Window.String(), "bucket", job.Bucket)
		res, runErr := w.Run(cmd.Context(), job)

		rec := metrics.NewRecorder(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job, log.With("component", "metrics"))
		err = rec.Push(cmd.Context(), metrics.Run{
			Cluster:       job.Cluster,
			Started:       started,
			Finished:      time.Now(),
			Success:       runErr == nil,
			PollAttempts:  res.PollAttempts,
			Pruned:        len(res.Prune.Deleted),
			PruneFailures: len(res.Prune.Failed),
		})
		if err != nil {
			log.Warn("metrics push failed", "error", err)
		}

		if runErr != nil {
			log.Error("archive run failed", "error", runErr, "snapshot", res.SnapshotID, "restore_job", res.RestoreJobID)
			return runErr
		}
		log.Info("archive run finished",
			"snapshot", res.SnapshotID,
			"restore_job", res.RestoreJobID,
			"deleted", len(res.Prune.Deleted),
			"delete_failures", len(res.Prune.Failed),
			"duration", time.Since(started).Round(time.Millisecond),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
