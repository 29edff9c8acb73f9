package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raoulx24/atlas-archiver/internal/logging"
)

type request struct {
	method string
	path   string
	body   string
}

func gateway(t *testing.T) (*httptest.Server, *[]request) {
	t.Helper()
	var reqs []request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		reqs = append(reqs, request{r.Method, r.URL.Path, string(b)})
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

var run = Run{
	Cluster:      "main",
	Started:      time.Unix(1700000000, 0),
	Finished:     time.Unix(1700000060, 0),
	PollAttempts: 4,
	Pruned:       2,
}

func TestPush_Success(t *testing.T) {
	srv, reqs := gateway(t)
	rec := NewRecorder(srv.URL, "atlas-archiver", logging.Nop())

	ok := run
	ok.Success = true
	if err := rec.Push(context.Background(), ok); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if len(*reqs) != 1 {
		t.Fatalf("got %d requests", len(*reqs))
	}
	got := (*reqs)[0]
	if got.method != http.MethodPut || got.path != "/metrics/job/atlas-archiver/cluster/main" {
		t.Fatalf("request = %s %s", got.method, got.path)
	}
	if !strings.Contains(got.body, "archiver_last_success_timestamp_seconds") {
		t.Fatal("successful push must include the last success gauge")
	}
}

func TestPush_FailureKeepsLastSuccess(t *testing.T) {
	srv, reqs := gateway(t)
	rec := NewRecorder(srv.URL, "atlas-archiver", logging.Nop())

	if err := rec.Push(context.Background(), run); err != nil {
		t.Fatalf("Push: %v", err)
	}
	got := (*reqs)[0]
	if got.method != http.MethodPost {
		t.Fatalf("failed run should be added, not replaced; method = %s", got.method)
	}
	if strings.Contains(got.body, "archiver_last_success_timestamp_seconds") {
		t.Fatal("failed push must not carry the last success gauge")
	}
}

func TestPush_Disabled(t *testing.T) {
	rec := NewRecorder("", "atlas-archiver", logging.Nop())
	if rec.Enabled() {
		t.Fatal("empty url should disable the recorder")
	}
	if err := rec.Push(context.Background(), run); err != nil {
		t.Fatalf("Push: %v", err)
	}
}
