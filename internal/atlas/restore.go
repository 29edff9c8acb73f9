package atlas

import (
	"context"
	"net/http"
	"time"
)

// DeliveryDownload asks Atlas to expose the snapshot as a downloadable archive.
const DeliveryDownload = "download"

// RestoreRequest is the body of a restore job creation.
type RestoreRequest struct {
	SnapshotID        string `json:"snapshotId"`
	DeliveryType      string `json:"deliveryType"`
	TargetClusterName string `json:"targetClusterName,omitempty"`
	TargetGroupID     string `json:"targetGroupId,omitempty"`
}

// RestoreJob is a provider-side restore job. DeliveryURL stays empty until
// the artifact can be downloaded.
type RestoreJob struct {
	ID           string    `json:"id"`
	SnapshotID   string    `json:"snapshotId"`
	DeliveryType string    `json:"deliveryType"`
	DeliveryURL  []string  `json:"deliveryUrl"`
	Expired      bool      `json:"expired"`
	Cancelled    bool      `json:"cancelled"`
	Failed       bool      `json:"failed"`
	CreatedAt    time.Time `json:"timestamp"`
}

// CreateRestoreJob starts a restore job for cluster.
func (c *Client) CreateRestoreJob(ctx context.Context, cluster string, req RestoreRequest) (*RestoreJob, error) {
	var job RestoreJob
	if err := c.do(ctx, http.MethodPost, c.clusterPath(cluster, "restoreJobs"), nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetRestoreJob fetches a restore job. It returns nil, nil when the job does
// not exist.
func (c *Client) GetRestoreJob(ctx context.Context, cluster, id string) (*RestoreJob, error) {
	var job RestoreJob
	err := c.do(ctx, http.MethodGet, c.clusterPath(cluster, "restoreJobs", id), nil, nil, &job)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
