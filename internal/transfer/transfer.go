// Package transfer copies a restore artifact from its delivery URL into the
// archive bucket.
package transfer

import "context"

// Copier moves the file at deliveryURL to bucket/path. Implementations do not
// retry; any failure is returned with kind TransferFailure.
type Copier interface {
	Copy(ctx context.Context, deliveryURL, bucket, path string, flags []string) error
}

// S3Remote describes the destination object store.
type S3Remote struct {
	Provider        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Endpoint        string
}
