package retention

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/raoulx24/atlas-archiver/internal/archive"
)

var now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time { return now.AddDate(0, 0, -d) }

func objectsAged(days ...int) []archive.Object {
	out := make([]archive.Object, len(days))
	for i, d := range days {
		out[i] = archive.Object{Key: fmt.Sprintf("main/%dd.tar.gz", d), LastModified: daysAgo(d)}
	}
	return out
}

func keys(objs []archive.Object) []string {
	var out []string
	for _, o := range objs {
		out = append(out, o.Key)
	}
	return out
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name   string
		ages   []int
		cutoff int
		keep   int
		want   []string
	}{
		{
			name:   "oldest beyond cutoff only",
			ages:   []int{5, 10, 20, 30},
			cutoff: 15,
			keep:   2,
			want:   []string{"main/30d.tar.gz", "main/20d.tar.gz"},
		},
		{
			name:   "total at floor",
			ages:   []int{100, 200},
			cutoff: 1,
			keep:   2,
		},
		{
			name:   "total below floor",
			ages:   []int{100},
			cutoff: 1,
			keep:   5,
		},
		{
			name:   "all younger than cutoff",
			ages:   []int{1, 2, 3, 4},
			cutoff: 10,
			keep:   1,
		},
		{
			name:   "budget limits deletions to the oldest",
			ages:   []int{40, 50, 60, 70},
			cutoff: 10,
			keep:   3,
			want:   []string{"main/70d.tar.gz"},
		},
		{
			name:   "cutoff is inclusive",
			ages:   []int{15, 14},
			cutoff: 15,
			keep:   0,
			want:   []string{"main/15d.tar.gz"},
		},
		{
			name: "empty",
			keep: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys(Plan(objectsAged(tt.ages...), Policy{Cutoff: daysAgo(tt.cutoff), MinToKeep: tt.keep}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("plan (-want +got):\n%s", diff)
			}
		})
	}
}

// Plan never drops below the floor and never touches objects newer than the cutoff.
func TestPlan_Invariants(t *testing.T) {
	ages := []int{0, 1, 3, 7, 7, 14, 30, 31, 90, 365}
	for keep := 0; keep <= len(ages)+1; keep++ {
		for cutoff := 0; cutoff <= 400; cutoff += 5 {
			pol := Policy{Cutoff: daysAgo(cutoff), MinToKeep: keep}
			plan := Plan(objectsAged(ages...), pol)

			if len(ages)-len(plan) < min(keep, len(ages)) {
				t.Fatalf("keep=%d cutoff=%d: %d survivors", keep, cutoff, len(ages)-len(plan))
			}
			for _, o := range plan {
				if o.LastModified.After(pol.Cutoff) {
					t.Fatalf("keep=%d cutoff=%d: planned %s newer than cutoff", keep, cutoff, o.Key)
				}
			}
		}
	}
}

func TestPlan_DoesNotReorderInput(t *testing.T) {
	objs := objectsAged(5, 30, 10)
	_ = Plan(objs, Policy{Cutoff: now, MinToKeep: 0})
	if diff := cmp.Diff([]string{"main/5d.tar.gz", "main/30d.tar.gz", "main/10d.tar.gz"}, keys(objs)); diff != "" {
		t.Fatalf("input reordered (-want +got):\n%s", diff)
	}
}
