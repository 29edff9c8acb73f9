package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/raoulx24/atlas-archiver/internal/fault"
	"github.com/raoulx24/atlas-archiver/internal/logging"
	"github.com/raoulx24/atlas-archiver/internal/snapshot"
)

// Putter stores a stream as an object. size may be -1 when unknown.
type Putter interface {
	Put(ctx context.Context, bucket, key string, r io.Reader, size int64) error
}

// Stream copies without an external tool: it downloads the artifact and
// streams it straight into the object store.
type Stream struct {
	HTTP  *http.Client
	Store Putter
	log   logging.Logger
}

// NewStream returns a Stream using http.DefaultClient when hc is nil.
func NewStream(hc *http.Client, store Putter, log logging.Logger) *Stream {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Stream{HTTP: hc, Store: store, log: log}
}

func (s *Stream) Copy(ctx context.Context, deliveryURL, bucket, path string, flags []string) error {
	art, err := snapshot.ParseArtifact(deliveryURL)
	if err != nil {
		return fault.New(fault.TransferFailure, "stream copy", err)
	}
	if len(flags) > 0 {
		s.log.Debug("ignoring rclone flags in native mode", "flags", strings.Join(flags, " "))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, art.URL(), nil)
	if err != nil {
		return fault.New(fault.TransferFailure, "stream copy", err)
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fault.New(fault.TransferFailure, "stream copy", fmt.Errorf("downloading %s: %w", art.Name, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fault.New(fault.TransferFailure, "stream copy",
			fmt.Errorf("downloading %s: unexpected status %s", art.Name, resp.Status))
	}

	key := strings.TrimPrefix(strings.TrimSuffix(path, "/")+"/"+art.Name, "/")
	s.log.Info("streaming artifact", "name", art.Name, "bucket", bucket, "key", key, "size", resp.ContentLength)
	if err := s.Store.Put(ctx, bucket, key, resp.Body, resp.ContentLength); err != nil {
		return fault.New(fault.TransferFailure, "stream copy", fmt.Errorf("uploading %s: %w", key, err))
	}
	return nil
}
