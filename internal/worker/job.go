package worker

import (
	"github.com/raoulx24/atlas-archiver/internal/retention"
	"github.com/raoulx24/atlas-archiver/internal/window"
)

// Job is one archive run for a cluster.
type Job struct {
	Cluster string
	// Window bounds snapshot creation, half-open.
	Window window.Window
	Policy retention.Policy
	Bucket string
	// Flags are passed through to the copy tool.
	Flags []string
}

// Prefix is the archive key prefix holding the cluster's copies.
func (j Job) Prefix() string {
	return j.Cluster + "/"
}
