// Package retention removes expired archive copies while always keeping a
// minimum number of them.
package retention

import (
	"iter"
	"slices"
	"time"

	"github.com/raoulx24/atlas-archiver/internal/archive"
)

// Policy is the pair of an age cutoff and a floor on the surviving count.
type Policy struct {
	// Cutoff: objects modified at or before it are old enough to delete.
	Cutoff    time.Time
	MinToKeep int
}

// Plan returns the objects to delete under p, oldest first.
//
// The budget len(objs)-MinToKeep is fixed before the age filter, so however
// many objects are old enough, at least MinToKeep survive. Objects newer than
// the cutoff are never selected.
func Plan(objs []archive.Object, p Policy) []archive.Object {
	sorted := slices.Clone(objs)
	slices.SortStableFunc(sorted, func(a, b archive.Object) int {
		return a.LastModified.Compare(b.LastModified)
	})

	budget := len(sorted) - p.MinToKeep
	if budget <= 0 {
		return nil
	}

	var out []archive.Object
	for o := range olderThan(sorted, p.Cutoff) {
		if len(out) == budget {
			break
		}
		out = append(out, o)
	}
	return out
}

// olderThan yields, in order, the objects modified at or before cutoff.
func olderThan(objs []archive.Object, cutoff time.Time) iter.Seq[archive.Object] {
	return func(yield func(archive.Object) bool) {
		for _, o := range objs {
			if o.LastModified.After(cutoff) {
				continue
			}
			if !yield(o) {
				return
			}
		}
	}
}
