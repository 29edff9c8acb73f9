package retention

import (
	"context"
	"fmt"
	"strings"

	"github.com/raoulx24/atlas-archiver/internal/archive"
	"github.com/raoulx24/atlas-archiver/internal/fault"
	"github.com/raoulx24/atlas-archiver/internal/logging"
)

// Report summarises one prune.
type Report struct {
	Listed  int
	Planned []string
	Deleted []string
	Failed  []archive.DeleteFailure
	DryRun  bool
}

// PartialDeleteError lists the keys a batch delete left behind.
type PartialDeleteError struct {
	Failed []archive.DeleteFailure
}

func (e *PartialDeleteError) Error() string {
	keys := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		keys[i] = f.Key
	}
	return fmt.Sprintf("%d object(s) not deleted: %s", len(e.Failed), strings.Join(keys, ", "))
}

// Pruner applies a Policy to the objects under a prefix.
type Pruner struct {
	store  archive.Store
	log    logging.Logger
	dryRun bool
}

// New returns a Pruner. With dryRun set it plans and reports but never deletes.
func New(store archive.Store, log logging.Logger, dryRun bool) *Pruner {
	return &Pruner{store: store, log: log, dryRun: dryRun}
}

// Prune lists prefix, plans deletions under p and removes them in one batch.
//
// Keys the store refuses are logged and returned as a PartialDeleteFailure
// error alongside the report; deletions that succeeded stay done. Any other
// error is fatal.
func (p *Pruner) Prune(ctx context.Context, prefix string, pol Policy) (Report, error) {
	p.log.Debug("entering Pruner.Prune()", "prefix", prefix)

	objs, err := p.store.List(ctx, prefix)
	if err != nil {
		return Report{}, fmt.Errorf("listing archive: %w", err)
	}

	plan := Plan(objs, pol)
	rep := Report{Listed: len(objs), DryRun: p.dryRun}
	for _, o := range plan {
		rep.Planned = append(rep.Planned, o.Key)
	}

	p.log.Info("retention plan",
		"prefix", prefix,
		"objects", len(objs),
		"cutoff", pol.Cutoff,
		"min_to_keep", pol.MinToKeep,
		"to_delete", len(plan),
	)

	if len(plan) == 0 {
		p.log.Warn("no matching snapshots to delete", "prefix", prefix)
		return rep, nil
	}

	if p.dryRun {
		for _, k := range rep.Planned {
			p.log.Info("dry run: would delete", "key", k)
		}
		return rep, nil
	}

	res, err := p.store.DeleteBatch(ctx, rep.Planned)
	if err != nil {
		return rep, fmt.Errorf("deleting expired snapshots: %w", err)
	}
	rep.Deleted, rep.Failed = res.Deleted, res.Failed

	if len(res.Deleted) > 0 {
		p.log.Info("deleted expired snapshots", "count", len(res.Deleted), "keys", res.Deleted)
	}
	for _, f := range res.Failed {
		p.log.Warn("failed to delete snapshot", "key", f.Key, "code", f.Code, "message", f.Message)
	}
	if len(res.Failed) > 0 {
		return rep, fault.New(fault.PartialDeleteFailure, "prune",
			&PartialDeleteError{Failed: res.Failed})
	}
	return rep, nil
}
