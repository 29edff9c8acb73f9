package snapshot

import "time"

// Predicate decides whether a snapshot is eligible.
type Predicate interface {
	Match(Snapshot) bool
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(Snapshot) bool

func (f PredicateFunc) Match(s Snapshot) bool { return f(s) }

type statusIs Status

func (p statusIs) Match(s Snapshot) bool { return s.Status == Status(p) }

// StatusIs matches snapshots in the given state.
func StatusIs(st Status) Predicate { return statusIs(st) }

type typeIs Type

func (p typeIs) Match(s Snapshot) bool { return s.Type == Type(p) }

// TypeIs matches snapshots of the given type.
func TypeIs(t Type) Predicate { return typeIs(t) }

type createdWithin struct {
	min, max time.Time
}

func (p createdWithin) Match(s Snapshot) bool {
	return !s.CreatedAt.Before(p.min) && s.CreatedAt.Before(p.max)
}

// CreatedWithin matches snapshots created in [min, max).
func CreatedWithin(min, max time.Time) Predicate {
	return createdWithin{min: min, max: max}
}

type matchAll []Predicate

func (m matchAll) Match(s Snapshot) bool {
	for _, p := range m {
		if !p.Match(s) {
			return false
		}
	}
	return true
}

// MatchAll holds when every predicate holds. An empty set matches everything.
func MatchAll(preds ...Predicate) Predicate { return matchAll(preds) }
