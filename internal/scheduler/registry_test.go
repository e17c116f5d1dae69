package scheduler

import (
	"testing"
	"time"

	"github.com/studybuddy/remindd/internal/agenda"
	"github.com/studybuddy/remindd/internal/auth"
	"github.com/studybuddy/remindd/pkg/buddylib"
	"github.com/studybuddy/remindd/pkg/logger"
)

func registryOptions(user *buddylib.User) Options {
	l := logger.NewNopLogger()
	return Options{
		Auth:   &auth.Static{User: user},
		Loader: agenda.NewLoader(&fakeAPI{}, l, time.Local, 0),
		Sender: &fakeSender{},
		Logger: l,
	}
}

func TestGetOrCreateReturnsSameInstance(t *testing.T) {
	t.Cleanup(DestroyCurrent)

	s1, err := GetOrCreate(registryOptions(studentUser))
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	s2, err := GetOrCreate(registryOptions(&buddylib.User{ID: "u2", Email: "7654321@students.wits.ac.za"}))
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if s1 != s2 {
		t.Fatal("second GetOrCreate returned a different instance")
	}
	if Current() != s1 {
		t.Fatal("Current does not match the live instance")
	}
}

func TestDestroyCurrentEmptiesSlot(t *testing.T) {
	s, err := GetOrCreate(registryOptions(studentUser))
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	DestroyCurrent()

	if s.State() != StateDestroyed {
		t.Fatalf("state = %v after DestroyCurrent, want destroyed", s.State())
	}
	if Current() != nil {
		t.Fatal("slot not emptied")
	}
	// Safe when already empty.
	DestroyCurrent()

	t.Cleanup(DestroyCurrent)
	s2, err := GetOrCreate(registryOptions(studentUser))
	if err != nil {
		t.Fatalf("GetOrCreate after destroy: %v", err)
	}
	if s2 == s {
		t.Fatal("destroyed instance reused")
	}
}

func TestGetOrCreateKeepsHaltedInstance(t *testing.T) {
	t.Cleanup(DestroyCurrent)

	opts := registryOptions(&buddylib.User{ID: "u1", Email: "someone@gmail.com"})
	s, err := GetOrCreate(opts)
	if err == nil {
		t.Fatal("expected policy gate error")
	}
	if s == nil || s.State() != StateInitializing {
		t.Fatal("halted instance must stay in the slot in Initializing")
	}
	s2, _ := GetOrCreate(opts)
	if s2 != s {
		t.Fatal("halted instance replaced on second call")
	}
}
