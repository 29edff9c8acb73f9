package worker

import (
	"context"

	"github.com/raoulx24/atlas-archiver/internal/restore"
	"github.com/raoulx24/atlas-archiver/internal/retention"
	"github.com/raoulx24/atlas-archiver/internal/snapshot"
)

// The stages a Worker drives. Each is satisfied by the matching package and
// replaced by fakes in tests.

type SnapshotLister interface {
	ListSnapshots(ctx context.Context, cluster string) ([]snapshot.Snapshot, error)
}

type RestoreRequester interface {
	Request(ctx context.Context, cluster, snapshotID string) (restore.Handle, error)
}

type DeliveryPoller interface {
	Poll(ctx context.Context, h restore.Handle) (restore.Delivery, error)
}

type Pruner interface {
	Prune(ctx context.Context, prefix string, p retention.Policy) (retention.Report, error)
}
