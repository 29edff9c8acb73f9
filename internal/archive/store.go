// Package archive is the object store holding archived snapshot copies.
package archive

import (
	"context"
	"time"
)

// Object is one archived copy.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// DeleteFailure is a key the store refused to delete.
type DeleteFailure struct {
	Key     string
	Code    string
	Message string
}

// DeleteResult splits a batch delete into deleted and failed keys.
type DeleteResult struct {
	Deleted []string
	Failed  []DeleteFailure
}

// Store lists and batch-deletes archived objects.
type Store interface {
	List(ctx context.Context, prefix string) ([]Object, error)
	DeleteBatch(ctx context.Context, keys []string) (DeleteResult, error)
}
