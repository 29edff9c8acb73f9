package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/raoulx24/atlas-archiver/internal/archive"
	"github.com/raoulx24/atlas-archiver/internal/atlas"
	"github.com/raoulx24/atlas-archiver/internal/config"
	"github.com/raoulx24/atlas-archiver/internal/logging"
	"github.com/raoulx24/atlas-archiver/internal/restore"
	"github.com/raoulx24/atlas-archiver/internal/retention"
	"github.com/raoulx24/atlas-archiver/internal/transfer"
	"github.com/raoulx24/atlas-archiver/internal/window"
	"github.com/raoulx24/atlas-archiver/internal/worker"
)

// buildJob derives the selection window and retention cutoff as of now.
// The cutoff is the window end minus the retention days.
func buildJob(cfg *config.Config, now time.Time) (worker.Job, error) {
	loc, err := time.LoadLocation(cfg.Window.Timezone)
	if err != nil {
		return worker.Job{}, fmt.Errorf("window timezone: %w", err)
	}
	w, err := window.Previous(cfg.Window.Cron, now, loc)
	if err != nil {
		return worker.Job{}, err
	}

	return worker.Job{
		Cluster: cfg.Atlas.ClusterName,
		Window:  w,
		Policy: retention.Policy{
			Cutoff:    w.End.AddDate(0, 0, -cfg.Retention.Days),
			MinToKeep: cfg.Retention.MinCount,
		},
		Bucket: cfg.Storage.Bucket,
		Flags:  strings.Fields(cfg.Transfer.Flags),
	}, nil
}

func newStore(cfg *config.Config) (*archive.MinioStore, error) {
	return archive.NewMinioStore(archive.S3Config{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
	})
}

func newCopier(cfg *config.Config, store *archive.MinioStore, log logging.Logger) (transfer.Copier, error) {
	switch cfg.Transfer.Mode {
	case "", "rclone":
		return transfer.NewRclone(cfg.Transfer.Program, transfer.S3Remote{
			Provider:        cfg.Storage.Provider,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Region:          cfg.Storage.Region,
			Endpoint:        cfg.Storage.Endpoint,
		}, transfer.ExecRunner{}, log.With("component", "rclone")), nil
	case "native":
		return transfer.NewStream(nil, store, log.With("component", "stream")), nil
	}
	return nil, fmt.Errorf("unknown transfer mode %q", cfg.Transfer.Mode)
}

// newWorker wires every pipeline stage from cfg.
func newWorker(cfg *config.Config, log logging.Logger) (*worker.Worker, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	copier, err := newCopier(cfg, store, log)
	if err != nil {
		return nil, err
	}

	api := newAtlasClient(cfg)
	poller := restore.NewPoller(api, restore.PollOptions{
		MaxRetries: cfg.Atlas.Poll.MaxRetries,
		Interval:   cfg.Atlas.Poll.Interval,
	}, log.With("component", "poller"))

	return worker.New(
		api,
		restore.NewRequester(api, cfg.Atlas.ProjectID),
		poller,
		copier,
		retention.New(store, log.With("component", "retention"), cfg.Retention.DryRun),
		log,
	), nil
}

func newAtlasClient(cfg *config.Config) *atlas.Client {
	return atlas.New(atlas.Config{
		BaseURL:    cfg.Atlas.BaseURL,
		PublicKey:  cfg.Atlas.PublicKey,
		PrivateKey: cfg.Atlas.PrivateKey,
		ProjectID:  cfg.Atlas.ProjectID,
	})
}
