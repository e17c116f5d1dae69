package scheduler

import (
	"context"
	"time"

	"github.com/studybuddy/remindd/pkg/buddylib"
)

const maxSleepCap = 60 * time.Second

type opKind int

const (
	opArm opKind = iota
	opCancel
	opCancelEvent
	opClear
)

// engineOp is one command for the engine goroutine. All commands travel over
// a single channel so they are applied strictly in the order they were sent;
// a Clear sent before an Arm can never wipe that Arm, no matter how busy the
// engine is when both arrive.
type engineOp struct {
	kind  opKind
	entry timerEntry // opArm
	key   TimerKey   // opCancel
	ref   EventRef   // opCancelEvent
}

// Engine manages armed reminder timers using a min-heap behind a single
// goroutine (active-object pattern). Arming, cancelling and firing all happen
// on that goroutine, so no armed-timer state is ever mutated concurrently.
// The onFire callback is invoked once per fired key; the fired entry is
// removed before the callback runs, regardless of what the callback does.
type Engine struct {
	ops chan engineOp
	ctx context.Context

	// index mirrors the live heap entries for outside inspection; only the
	// engine goroutine writes it.
	index buddylib.VMap[TimerKey, time.Time]
}

// NewEngine creates and starts a timer engine. The engine goroutine exits
// when ctx is cancelled; no callback fires after that.
func NewEngine(ctx context.Context, onFire func(TimerKey)) *Engine {
	e := &Engine{
		ops:   make(chan engineOp, 256),
		ctx:   ctx,
		index: buddylib.NewVMap[TimerKey, time.Time](),
	}
	go e.run(onFire)
	return e
}

func (e *Engine) send(op engineOp) {
	select {
	case e.ops <- op:
	case <-e.ctx.Done():
	}
}

// Arm schedules a timer for the given key. Re-arming an existing key cancels
// the previous timer first, so at most one timer exists per key.
func (e *Engine) Arm(key TimerKey, fireAt time.Time) {
	e.send(engineOp{kind: opArm, entry: timerEntry{Key: key, FireAt: fireAt}})
}

// Cancel removes the timer for the given key, if armed.
func (e *Engine) Cancel(key TimerKey) {
	e.send(engineOp{kind: opCancel, key: key})
}

// CancelEvent removes every timer belonging to the given event.
func (e *Engine) CancelEvent(ref EventRef) {
	e.send(engineOp{kind: opCancelEvent, ref: ref})
}

// Clear removes all armed timers.
func (e *Engine) Clear() {
	e.send(engineOp{kind: opClear})
}

// Armed returns the number of currently armed timers.
func (e *Engine) Armed() int {
	return e.index.Len()
}

// ArmedKeys returns a snapshot of all armed timer keys.
func (e *Engine) ArmedKeys() []TimerKey {
	return e.index.Keys()
}

// run is the engine goroutine. It sleeps until the next entry's fire time
// (capped at 60s so wall-clock jumps are noticed), then fires every entry
// whose time has arrived.
func (e *Engine) run(onFire func(TimerKey)) {
	h := &timerHeap{}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		if h.Len() == 0 {
			// Nothing armed; block on the command channel alone.
			return nil
		}
		dur := time.Until((*h)[0].FireAt)
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	apply := func(op engineOp) {
		switch op.kind {
		case opArm:
			if _, ok := e.index.Get(op.entry.Key); ok {
				heapRemoveKey(h, op.entry.Key)
			}
			heapPush(h, op.entry)
			e.index.Set(op.entry.Key, op.entry.FireAt)

		case opCancel:
			if heapRemoveKey(h, op.key) {
				e.index.Delete(op.key)
			}

		case opCancelEvent:
			if heapRemoveEvent(h, op.ref) > 0 {
				for _, key := range e.index.Keys() {
					if key.Event() == op.ref {
						e.index.Delete(key)
					}
				}
			}

		case opClear:
			*h = (*h)[:0]
			e.index.Make()
		}
	}

	timerCh := resetTimer()

	for {
		select {
		case <-e.ctx.Done():
			return

		case op := <-e.ops:
			apply(op)
			timerCh = resetTimer()

		case <-timerCh:
			now := time.Now()
			for h.Len() > 0 && !(*h)[0].FireAt.After(now) {
				entry := heapPop(h)
				e.index.Delete(entry.Key)
				onFire(entry.Key)
			}
			timerCh = resetTimer()
		}
	}
}
