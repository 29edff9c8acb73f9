// Package worker runs the archive pipeline: select a snapshot, restore it as a
// download, copy it to the archive bucket and prune expired copies.
package worker

import (
	"context"
	"fmt"

	"github.com/raoulx24/atlas-archiver/internal/fault"
	"github.com/raoulx24/atlas-archiver/internal/logging"
	"github.com/raoulx24/atlas-archiver/internal/retention"
	"github.com/raoulx24/atlas-archiver/internal/snapshot"
	"github.com/raoulx24/atlas-archiver/internal/transfer"
)

// Result describes a completed run.
type Result struct {
	SnapshotID   string
	RestoreJobID string
	DeliveryURL  string
	PollAttempts int
	Prune        retention.Report
	// PruneErr is the non-fatal partial delete failure, if any.
	PruneErr error
}

// Worker wires the pipeline stages together.
type Worker struct {
	snapshots SnapshotLister
	requester RestoreRequester
	poller    DeliveryPoller
	copier    transfer.Copier
	pruner    Pruner
	log       logging.Logger
}

// New creates a worker from its stages.
func New(snapshots SnapshotLister, requester RestoreRequester, poller DeliveryPoller,
	copier transfer.Copier, pruner Pruner, log logging.Logger) *Worker {
	log.Debug("creating worker")
	return &Worker{
		snapshots: snapshots,
		requester: requester,
		poller:    poller,
		copier:    copier,
		pruner:    pruner,
		log:       log,
	}
}

// Run executes one pass of the pipeline. Any fatal error stops the run at the
// failing stage; a partial retention failure is logged and reported in Result.
func (w *Worker) Run(ctx context.Context, job Job) (Result, error) {
	w.log.Debug("entering Worker.Run()", "cluster", job.Cluster, "window", job.Window.String())
	var res Result

	snaps, err := w.snapshots.ListSnapshots(ctx, job.Cluster)
	if err != nil {
		return res, fmt.Errorf("listing snapshots: %w", err)
	}
	snap, err := snapshot.Select(snaps, job.Window.Start, job.Window.End)
	if err != nil {
		return res, err
	}
	res.SnapshotID = snap.ID
	w.log.Info("snapshot selected", "snapshot", snap.ID, "created_at", snap.CreatedAt, "candidates", len(snaps))

	h, err := w.requester.Request(ctx, job.Cluster, snap.ID)
	if err != nil {
		return res, err
	}
	res.RestoreJobID = h.JobID
	w.log.Info("restore job created", "job", h.JobID)

	d, err := w.poller.Poll(ctx, h)
	res.PollAttempts = d.Attempts
	if err != nil {
		return res, err
	}
	res.DeliveryURL = d.URL
	w.log.Info("delivery url ready", "job", h.JobID, "attempts", d.Attempts)

	if err := w.copier.Copy(ctx, d.URL, job.Bucket, job.Cluster, job.Flags); err != nil {
		return res, err
	}
	w.log.Info("snapshot archived", "bucket", job.Bucket, "path", job.Cluster)

	res.Prune, err = w.Prune(ctx, job)
	if fault.IsFatal(err) {
		return res, err
	}
	res.PruneErr = err
	return res, nil
}

// Prune runs only the retention stage. A partial delete failure is logged and
// returned as is; callers tell it apart with fault.IsFatal.
func (w *Worker) Prune(ctx context.Context, job Job) (retention.Report, error) {
	w.log.Debug("entering Worker.Prune()", "cluster", job.Cluster)
	rep, err := w.pruner.Prune(ctx, job.Prefix(), job.Policy)
	if err == nil {
		return rep, nil
	}
	if fault.IsFatal(err) {
		return rep, fmt.Errorf("retention: %w", err)
	}
	w.log.Warn("retention finished with failures", "error", err, "failed", len(rep.Failed))
	return rep, err
}
