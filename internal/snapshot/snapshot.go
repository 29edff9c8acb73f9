package snapshot

import "time"

// Status is the provider-reported state of a snapshot.
type Status string

const (
	Queued     Status = "queued"
	InProgress Status = "inProgress"
	Completed  Status = "completed"
	Failed     Status = "failed"
)

// Type tells scheduled snapshots apart from manually triggered ones.
type Type string

const (
	Scheduled Type = "scheduled"
	OnDemand  Type = "onDemand"
)

// Snapshot represents a single cloud backup snapshot as reported by the provider.
type Snapshot struct {
	ID          string
	CreatedAt   time.Time
	Status      Status
	Type        Type
	SizeBytes   int64
	Description string
}
