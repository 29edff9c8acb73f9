package atlas

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/raoulx24/atlas-archiver/internal/snapshot"
)

const itemsPerPage = 100

type snapshotDoc struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	Status       string    `json:"status"`
	SnapshotType string    `json:"snapshotType"`
	StorageSize  int64     `json:"storageSizeBytes"`
	Description  string    `json:"description"`
}

type snapshotPage struct {
	Results    []snapshotDoc `json:"results"`
	TotalCount int           `json:"totalCount"`
}

// ListSnapshots returns every cloud backup snapshot of cluster, following pagination.
func (c *Client) ListSnapshots(ctx context.Context, cluster string) ([]snapshot.Snapshot, error) {
	var out []snapshot.Snapshot
	for page := 1; ; page++ {
		q := url.Values{
			"pageNum":      {strconv.Itoa(page)},
			"itemsPerPage": {strconv.Itoa(itemsPerPage)},
		}

		var p snapshotPage
		if err := c.do(ctx, http.MethodGet, c.clusterPath(cluster, "snapshots"), q, nil, &p); err != nil {
			return nil, err
		}
		for _, d := range p.Results {
			out = append(out, snapshot.Snapshot{
				ID:          d.ID,
				CreatedAt:   d.CreatedAt,
				Status:      snapshot.Status(d.Status),
				Type:        snapshot.Type(d.SnapshotType),
				SizeBytes:   d.StorageSize,
				Description: d.Description,
			})
		}

		if len(p.Results) == 0 || len(out) >= p.TotalCount {
			return out, nil
		}
	}
}
