package window

import (
	"errors"
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestPrevious(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		now       string
		wantStart string
		wantEnd   string
	}{
		{"daily", "0 0 * * *", "2024-01-03T10:15:00Z", "2024-01-02T00:00:00Z", "2024-01-03T00:00:00Z"},
		{"daily at boundary", "0 0 * * *", "2024-01-03T00:00:00Z", "2024-01-02T00:00:00Z", "2024-01-03T00:00:00Z"},
		{"hourly", "0 * * * *", "2024-01-03T10:15:00Z", "2024-01-03T09:00:00Z", "2024-01-03T10:00:00Z"},
		{"weekly on monday", "0 0 * * 1", "2024-01-10T12:00:00Z", "2024-01-01T00:00:00Z", "2024-01-08T00:00:00Z"},
		{"monthly", "0 0 1 * *", "2024-03-15T00:00:00Z", "2024-02-01T00:00:00Z", "2024-03-01T00:00:00Z"},
		{"yearly", "0 0 1 1 *", "2024-06-01T00:00:00Z", "2023-01-01T00:00:00Z", "2024-01-01T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Previous(tt.spec, mustTime(t, tt.now), time.UTC)
			if err != nil {
				t.Fatalf("Previous: %v", err)
			}
			if !w.Start.Equal(mustTime(t, tt.wantStart)) || !w.End.Equal(mustTime(t, tt.wantEnd)) {
				t.Fatalf("got %s, want [%s, %s)", w, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestPrevious_Timezone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	w, err := Previous("0 0 * * *", mustTime(t, "2024-01-03T10:00:00Z"), loc)
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if !w.End.Equal(mustTime(t, "2024-01-02T22:00:00Z")) {
		t.Fatalf("end = %s", w.End)
	}
}

func TestPrevious_Errors(t *testing.T) {
	if _, err := Previous("not a cron", time.Now(), time.UTC); err == nil {
		t.Fatal("expected parse error")
	}
	// February 30th never fires.
	_, err := Previous("0 0 30 2 *", mustTime(t, "2024-01-03T00:00:00Z"), time.UTC)
	if !errors.Is(err, ErrNoBoundary) {
		t.Fatalf("expected ErrNoBoundary, got %v", err)
	}
}

func TestContains(t *testing.T) {
	w := Window{Start: mustTime(t, "2024-01-02T00:00:00Z"), End: mustTime(t, "2024-01-03T00:00:00Z")}
	if !w.Contains(w.Start) || w.Contains(w.End) {
		t.Fatal("window must be half-open")
	}
}
