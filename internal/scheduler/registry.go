package scheduler

import "sync"

// The process holds at most one live scheduler. GetOrCreate fills the slot,
// DestroyCurrent empties it; a scheduler removed from the slot is destroyed
// and never reused.
var (
	regMu   sync.Mutex
	current *Scheduler
)

// GetOrCreate returns the live scheduler, constructing and initializing one
// from opts when the slot is empty. A second call with different options
// returns the existing instance untouched.
func GetOrCreate(opts Options) (*Scheduler, error) {
	regMu.Lock()
	defer regMu.Unlock()
	if current != nil {
		return current, nil
	}
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	current = s
	if err := s.Init(); err != nil {
		// Policy halts keep the slot occupied: the instance stays inspectable
		// and a retry would fail the same gate anyway.
		return s, err
	}
	return s, nil
}

// Current returns the live scheduler, or nil when none exists.
func Current() *Scheduler {
	regMu.Lock()
	defer regMu.Unlock()
	return current
}

// DestroyCurrent tears down the live scheduler and empties the slot. No-op
// when the slot is already empty.
func DestroyCurrent() {
	regMu.Lock()
	defer regMu.Unlock()
	if current == nil {
		return
	}
	current.Destroy()
	current = nil
}
