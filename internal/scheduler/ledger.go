package scheduler

import "github.com/studybuddy/remindd/pkg/buddylib"

// DispatchState is the per-(event, rule, start) idempotency state.
type DispatchState int

const (
	// StateDispatching marks an in-flight dispatch: the key was optimistically
	// claimed before the POST went out.
	StateDispatching DispatchState = iota
	// StateSent marks a confirmed dispatch; the key is never retried.
	StateSent
	// StateFailed marks a rolled-back dispatch; the key may be claimed again
	// by a later trigger.
	StateFailed
)

func (s DispatchState) String() string {
	switch s {
	case StateDispatching:
		return "dispatching"
	case StateSent:
		return "sent"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ledger tracks dispatch attempts per dedup key. A key that is absent is
// implicitly armed: the next trigger may claim it. The ledger lives for the
// scheduler's lifetime and is cleared wholesale on full reset.
type Ledger struct {
	m buddylib.VMap[DedupKey, DispatchState]
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{m: buddylib.NewVMap[DedupKey, DispatchState]()}
}

// Begin optimistically claims the key for dispatch. It reports false when the
// key is already sent or a dispatch is in flight — the caller must then
// suppress the duplicate. A failed key may be claimed again.
func (l *Ledger) Begin(key DedupKey) bool {
	// Single-writer discipline: Begin is only called from the scheduler's
	// dispatch path, so check-then-set here is not racy.
	if st, ok := l.m.Get(key); ok && st != StateFailed {
		return false
	}
	l.m.Set(key, StateDispatching)
	return true
}

// MarkSent confirms a successful dispatch.
func (l *Ledger) MarkSent(key DedupKey) {
	l.m.Set(key, StateSent)
}

// Rollback releases a claimed key after a failed dispatch so a future
// trigger can retry it.
func (l *Ledger) Rollback(key DedupKey) {
	l.m.Set(key, StateFailed)
}

// State reports the current state of a key.
func (l *Ledger) State(key DedupKey) (DispatchState, bool) {
	return l.m.Get(key)
}

// SentCount returns how many keys are confirmed sent.
func (l *Ledger) SentCount() int {
	var n int
	l.m.Range(func(_ DedupKey, st DispatchState) bool {
		if st == StateSent {
			n++
		}
		return true
	})
	return n
}

// Clear wipes the ledger. Used on full scheduler reset and teardown.
func (l *Ledger) Clear() {
	l.m.Make()
}
