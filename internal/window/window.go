// Package window computes the snapshot selection window from a cron schedule.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}

// ErrNoBoundary is returned when the schedule fires fewer than twice in the
// longest lookback.
var ErrNoBoundary = errors.New("schedule does not fire twice within two years")

var lookbacks = []time.Duration{
	time.Hour,
	24 * time.Hour,
	8 * 24 * time.Hour,
	32 * 24 * time.Hour,
	367 * 24 * time.Hour,
	733 * 24 * time.Hour,
}

// Previous returns the most recent complete period of spec as of now:
// End is the last activation at or before now, Start the one before it.
// With "0 0 * * *" this is [yesterday 00:00, today 00:00) in loc.
func Previous(spec string, now time.Time, loc *time.Location) (Window, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return Window{}, fmt.Errorf("parsing window schedule %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	for _, lb := range lookbacks {
		var prev, last time.Time
		for t := sched.Next(now.Add(-lb)); !t.IsZero() && !t.After(now); t = sched.Next(t) {
			prev, last = last, t
		}
		if !prev.IsZero() {
			return Window{Start: prev, End: last}, nil
		}
	}
	return Window{}, fmt.Errorf("window for %q at %s: %w", spec, now.Format(time.RFC3339), ErrNoBoundary)
}
