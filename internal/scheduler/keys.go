package scheduler

import (
	"fmt"
	"time"

	"github.com/studybuddy/remindd/pkg/buddylib"
)

// TimerKey identifies one armed timer: an event plus one reminder rule.
// At most one armed timer exists per key at any time.
type TimerKey struct {
	EventID string
	Kind    buddylib.EventKind
	Rule    string
}

// String renders the key for logs.
func (k TimerKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.EventID, k.Kind, k.Rule)
}

// Event returns the event portion of the key.
func (k TimerKey) Event() EventRef {
	return EventRef{ID: k.EventID, Kind: k.Kind}
}

// EventRef identifies an event independent of any rule. It is the unit of
// bulk cancellation: re-scheduling an event first cancels all timers whose
// key carries this ref.
type EventRef struct {
	ID   string
	Kind buddylib.EventKind
}

// DedupKey identifies one dispatch opportunity. StartUnixMilli is part of the
// key so that a rescheduled event (same id, new start) may be reminded again.
type DedupKey struct {
	EventID        string
	Rule           string
	StartUnixMilli int64
}

// DedupKeyFor builds the dedup key for an event and rule label.
func DedupKeyFor(ev buddylib.Event, rule string) DedupKey {
	return DedupKey{
		EventID:        ev.ID,
		Rule:           rule,
		StartUnixMilli: ev.StartAt.UnixMilli(),
	}
}

// String renders the key for logs.
func (k DedupKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.EventID, k.Rule, time.UnixMilli(k.StartUnixMilli).UTC().Format(time.RFC3339))
}
