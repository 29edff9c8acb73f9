package retention

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raoulx24/atlas-archiver/internal/archive"
	"github.com/raoulx24/atlas-archiver/internal/fault"
	"github.com/raoulx24/atlas-archiver/internal/logging"
)

type fakeStore struct {
	objs      []archive.Object
	listErr   error
	deleteErr error
	refuse    map[string]bool

	prefix  string
	batches [][]string
}

func (f *fakeStore) List(_ context.Context, prefix string) ([]archive.Object, error) {
	f.prefix = prefix
	return f.objs, f.listErr
}

func (f *fakeStore) DeleteBatch(_ context.Context, keys []string) (archive.DeleteResult, error) {
	f.batches = append(f.batches, keys)
	if f.deleteErr != nil {
		return archive.DeleteResult{}, f.deleteErr
	}
	var res archive.DeleteResult
	for _, k := range keys {
		if f.refuse[k] {
			res.Failed = append(res.Failed, archive.DeleteFailure{Key: k, Code: "AccessDenied", Message: "denied"})
			continue
		}
		res.Deleted = append(res.Deleted, k)
	}
	return res, nil
}

var policy = Policy{Cutoff: daysAgo(15), MinToKeep: 2}

func TestPrune_OneBatch(t *testing.T) {
	store := &fakeStore{objs: objectsAged(5, 10, 20, 30)}
	rep, err := New(store, logging.Nop(), false).Prune(context.Background(), "main/", policy)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if store.prefix != "main/" {
		t.Fatalf("listed prefix %q", store.prefix)
	}

	want := [][]string{{"main/30d.tar.gz", "main/20d.tar.gz"}}
	if diff := cmp.Diff(want, store.batches); diff != "" {
		t.Fatalf("batches (-want +got):\n%s", diff)
	}
	if rep.Listed != 4 || len(rep.Deleted) != 2 || rep.Listed-len(rep.Deleted) != 2 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestPrune_NothingEligible(t *testing.T) {
	store := &fakeStore{objs: objectsAged(1, 2, 3, 4)}
	rep, err := New(store, logging.Nop(), false).Prune(context.Background(), "main/", policy)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if len(store.batches) != 0 {
		t.Fatalf("delete called with %v", store.batches)
	}
	if len(rep.Planned) != 0 {
		t.Fatalf("planned %v", rep.Planned)
	}
}

func TestPrune_PartialFailure(t *testing.T) {
	store := &fakeStore{
		objs:   objectsAged(5, 10, 20, 30),
		refuse: map[string]bool{"main/20d.tar.gz": true},
	}
	rep, err := New(store, logging.Nop(), false).Prune(context.Background(), "main/", policy)

	if fault.KindOf(err) != fault.PartialDeleteFailure || fault.IsFatal(err) {
		t.Fatalf("expected non-fatal partial failure, got %v", err)
	}
	var pde *PartialDeleteError
	if !errors.As(err, &pde) || len(pde.Failed) != 1 || pde.Failed[0].Key != "main/20d.tar.gz" {
		t.Fatalf("partial delete error = %v", err)
	}
	if diff := cmp.Diff([]string{"main/30d.tar.gz"}, rep.Deleted); diff != "" {
		t.Fatalf("deleted (-want +got):\n%s", diff)
	}
	if len(store.batches) != 1 {
		t.Fatalf("partial failure must not be retried, %d batches", len(store.batches))
	}
}

func TestPrune_DryRun(t *testing.T) {
	store := &fakeStore{objs: objectsAged(5, 10, 20, 30)}
	rep, err := New(store, logging.Nop(), true).Prune(context.Background(), "main/", policy)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if len(store.batches) != 0 {
		t.Fatalf("dry run deleted %v", store.batches)
	}
	if !rep.DryRun || len(rep.Planned) != 2 || len(rep.Deleted) != 0 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestPrune_StoreErrorsAreFatal(t *testing.T) {
	boom := errors.New("connection reset")
	for name, store := range map[string]*fakeStore{
		"list":   {listErr: boom},
		"delete": {objs: objectsAged(5, 10, 20, 30), deleteErr: boom},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(store, logging.Nop(), false).Prune(context.Background(), "main/", policy)
			if !errors.Is(err, boom) || !fault.IsFatal(err) {
				t.Fatalf("expected fatal wrapped error, got %v", err)
			}
		})
	}
}
