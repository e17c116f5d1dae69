package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/studybuddy/remindd/pkg/buddylib"
)

// fireCollector records fired keys on a buffered channel.
func fireCollector() (func(TimerKey), chan TimerKey) {
	ch := make(chan TimerKey, 16)
	return func(k TimerKey) { ch <- k }, ch
}

func waitFire(t *testing.T, ch chan TimerKey, within time.Duration) TimerKey {
	t.Helper()
	select {
	case k := <-ch:
		return k
	case <-time.After(within):
		t.Fatal("timer did not fire in time")
		return TimerKey{}
	}
}

func assertNoFire(t *testing.T, ch chan TimerKey, within time.Duration) {
	t.Helper()
	select {
	case k := <-ch:
		t.Fatalf("unexpected fire: %v", k)
	case <-time.After(within):
	}
}

func TestEngineFiresAtDueTime(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	onFire, fired := fireCollector()
	e := NewEngine(ctx, onFire)

	key := tk("ev1", buddylib.KindActivity, "1 hour before")
	e.Arm(key, time.Now().Add(60*time.Millisecond))

	got := waitFire(t, fired, time.Second)
	if got != key {
		t.Fatalf("fired %v, want %v", got, key)
	}
	// The fired entry is removed before the callback runs.
	time.Sleep(20 * time.Millisecond)
	if n := e.Armed(); n != 0 {
		t.Fatalf("Armed = %d after firing, want 0", n)
	}
}

func TestEngineReArmReplacesTimer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	onFire, fired := fireCollector()
	e := NewEngine(ctx, onFire)

	key := tk("ev1", buddylib.KindActivity, "1 hour before")
	e.Arm(key, time.Now().Add(50*time.Millisecond))
	e.Arm(key, time.Now().Add(150*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	if n := e.Armed(); n != 1 {
		t.Fatalf("Armed = %d after re-arm, want 1", n)
	}
	waitFire(t, fired, time.Second)
	assertNoFire(t, fired, 200*time.Millisecond)
}

func TestEngineCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	onFire, fired := fireCollector()
	e := NewEngine(ctx, onFire)

	key := tk("ev1", buddylib.KindActivity, "1 hour before")
	e.Arm(key, time.Now().Add(80*time.Millisecond))
	e.Cancel(key)

	assertNoFire(t, fired, 200*time.Millisecond)
	if n := e.Armed(); n != 0 {
		t.Fatalf("Armed = %d after cancel, want 0", n)
	}
}

func TestEngineCancelEventLeavesOthers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	onFire, fired := fireCollector()
	e := NewEngine(ctx, onFire)

	for _, rule := range []string{"r1", "r2"} {
		e.Arm(tk("ev1", buddylib.KindActivity, rule), time.Now().Add(60*time.Millisecond))
	}
	other := tk("ev2", buddylib.KindGroupSession, "r1")
	e.Arm(other, time.Now().Add(60*time.Millisecond))

	e.CancelEvent(EventRef{ID: "ev1", Kind: buddylib.KindActivity})

	got := waitFire(t, fired, time.Second)
	if got != other {
		t.Fatalf("fired %v, want only %v", got, other)
	}
	assertNoFire(t, fired, 150*time.Millisecond)
}

func TestEngineClear(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	onFire, fired := fireCollector()
	e := NewEngine(ctx, onFire)

	e.Arm(tk("ev1", buddylib.KindActivity, "r1"), time.Now().Add(60*time.Millisecond))
	e.Arm(tk("ev2", buddylib.KindActivity, "r1"), time.Now().Add(60*time.Millisecond))
	e.Clear()

	time.Sleep(20 * time.Millisecond)
	if n := e.Armed(); n != 0 {
		t.Fatalf("Armed = %d after Clear, want 0", n)
	}
	assertNoFire(t, fired, 150*time.Millisecond)
}

// A Clear followed by Arms must apply in that order even when both arrive
// while the engine goroutine is busy inside a fire callback, as happens when
// a refresh rebuilds the timer set at the same moment a timer fires. The
// re-armed timer must survive.
func TestEngineClearThenArmWhileFiring(t *testing.T) {
	for i := 0; i < 25; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		release := make(chan struct{})
		entered := make(chan TimerKey, 1)
		e := NewEngine(ctx, func(k TimerKey) {
			entered <- k
			<-release
		})

		e.Arm(tk("busy", buddylib.KindActivity, "r1"), time.Now())
		waitFire(t, entered, time.Second)

		// The engine is now parked in the callback; both commands buffer.
		rearmed := tk("ev1", buddylib.KindActivity, "1 hour before")
		e.Clear()
		e.Arm(rearmed, time.Now().Add(time.Hour))
		close(release)

		deadline := time.Now().Add(time.Second)
		for e.Armed() != 1 && time.Now().Before(deadline) {
			time.Sleep(2 * time.Millisecond)
		}
		if n := e.Armed(); n != 1 {
			cancel()
			t.Fatalf("run %d: Armed = %d after Clear+Arm, want 1", i, n)
		}
		if keys := e.ArmedKeys(); keys[0] != rearmed {
			cancel()
			t.Fatalf("run %d: armed %v, want %v", i, keys[0], rearmed)
		}
		cancel()
	}
}

// Arm then CancelEvent sent back to back must leave nothing armed, in any
// engine state.
func TestEngineCommandOrderPreserved(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	onFire, fired := fireCollector()
	e := NewEngine(ctx, onFire)

	key := tk("ev1", buddylib.KindActivity, "r1")
	e.Arm(key, time.Now().Add(80*time.Millisecond))
	e.CancelEvent(key.Event())

	assertNoFire(t, fired, 200*time.Millisecond)
	if n := e.Armed(); n != 0 {
		t.Fatalf("Armed = %d, want 0", n)
	}
}

func TestEngineStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	onFire, fired := fireCollector()
	e := NewEngine(ctx, onFire)

	e.Arm(tk("ev1", buddylib.KindActivity, "r1"), time.Now().Add(80*time.Millisecond))
	cancel()

	assertNoFire(t, fired, 200*time.Millisecond)
}
