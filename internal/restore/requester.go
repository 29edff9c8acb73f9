// Package restore requests download restore jobs and waits for their delivery URL.
package restore

import (
	"context"
	"fmt"

	"github.com/raoulx24/atlas-archiver/internal/atlas"
)

// Handle identifies a provider-side restore job.
type Handle struct {
	Cluster string
	JobID   string
}

// JobCreator is the provider call behind Requester.
type JobCreator interface {
	CreateRestoreJob(ctx context.Context, cluster string, req atlas.RestoreRequest) (*atlas.RestoreJob, error)
}

// Requester creates download restore jobs. It is not idempotent: each call
// creates a new job on the provider.
type Requester struct {
	api       JobCreator
	projectID string
}

// NewRequester returns a Requester restoring into projectID.
func NewRequester(api JobCreator, projectID string) *Requester {
	return &Requester{api: api, projectID: projectID}
}

// Request asks for snapshotID of cluster to be delivered as a download.
// Source and target are the same cluster.
func (r *Requester) Request(ctx context.Context, cluster, snapshotID string) (Handle, error) {
	job, err := r.api.CreateRestoreJob(ctx, cluster, atlas.RestoreRequest{
		SnapshotID:        snapshotID,
		DeliveryType:      atlas.DeliveryDownload,
		TargetClusterName: cluster,
		TargetGroupID:     r.projectID,
	})
	if err != nil {
		return Handle{}, fmt.Errorf("creating restore job for snapshot %s: %w", snapshotID, err)
	}
	if job == nil || job.ID == "" {
		return Handle{}, fmt.Errorf("creating restore job for snapshot %s: empty job id", snapshotID)
	}
	return Handle{Cluster: cluster, JobID: job.ID}, nil
}
