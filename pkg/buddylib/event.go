package buddylib

import (
	"sort"
	"time"
)

// EventKind distinguishes the two calendar sources an Event can come from.
type EventKind string

const (
	// KindActivity is a personal activity created by the user.
	KindActivity EventKind = "activity"
	// KindGroupSession is a scheduled study-group session.
	KindGroupSession EventKind = "group_session"
)

// Event is the common envelope both calendar sources are normalized into.
// It is derived state, never persisted.
type Event struct {
	ID          string    `json:"id"`
	Kind        EventKind `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Location    string    `json:"location,omitempty"`

	// StartAt is the absolute start instant in the local wall clock.
	StartAt time.Time `json:"start_at"`

	// DurationHours is at least 1.
	DurationHours int `json:"duration_hours"`
}

// EventSlice sorts events ascending by start time. The sort is stable so
// ties keep their original (source) order.
type EventSlice []Event

func (s EventSlice) Len() int           { return len(s) }
func (s EventSlice) Less(i, j int) bool { return s[i].StartAt.Before(s[j].StartAt) }
func (s EventSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Upcoming merges the given event slices, drops everything not strictly in
// the future at now, and returns the rest sorted ascending by start time.
// It is a pure function: inputs are not mutated.
func Upcoming(now time.Time, sources ...[]Event) []Event {
	var merged []Event
	for _, src := range sources {
		for _, ev := range src {
			if ev.StartAt.After(now) {
				merged = append(merged, ev)
			}
		}
	}
	sort.Stable(EventSlice(merged))
	return merged
}
