package snapshot

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/raoulx24/atlas-archiver/internal/fault"
)

// ErrNotFound is returned when no snapshot satisfies the selection.
var ErrNotFound = errors.New("no eligible snapshot")

// Filter returns the snapshots matching all predicates, oldest first.
// The input slice is not modified.
func Filter(snaps []Snapshot, preds ...Predicate) []Snapshot {
	match := MatchAll(preds...)

	out := make([]Snapshot, 0, len(snaps))
	for _, s := range snaps {
		if match.Match(s) {
			out = append(out, s)
		}
	}

	slices.SortStableFunc(out, func(a, b Snapshot) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

// Eligible returns the completed scheduled snapshots created in [min, max), oldest first.
func Eligible(snaps []Snapshot, min, max time.Time) []Snapshot {
	return Filter(snaps,
		StatusIs(Completed),
		TypeIs(Scheduled),
		CreatedWithin(min, max),
	)
}

// Select picks the earliest eligible snapshot in [min, max).
func Select(snaps []Snapshot, min, max time.Time) (Snapshot, error) {
	eligible := Eligible(snaps, min, max)
	if len(eligible) == 0 {
		return Snapshot{}, fault.New(fault.NotFound, "select snapshot",
			fmt.Errorf("%w in [%s, %s)", ErrNotFound,
				min.Format(time.RFC3339), max.Format(time.RFC3339)))
	}
	return eligible[0], nil
}
