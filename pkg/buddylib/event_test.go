package buddylib

import (
	"testing"
	"time"
)

func TestUpcomingFiltersAndSorts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	activities := []Event{
		{ID: "past", Kind: KindActivity, StartAt: now.Add(-time.Minute)},
		{ID: "far", Kind: KindActivity, StartAt: now.Add(48 * time.Hour)},
	}
	sessions := []Event{
		{ID: "now", Kind: KindGroupSession, StartAt: now},
		{ID: "near", Kind: KindGroupSession, StartAt: now.Add(time.Hour)},
	}

	got := Upcoming(now, activities, sessions)

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].ID != "near" || got[1].ID != "far" {
		t.Errorf("wrong order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestUpcomingExcludesExactNow(t *testing.T) {
	now := time.Now()
	got := Upcoming(now, []Event{{ID: "now", StartAt: now}})
	if len(got) != 0 {
		t.Errorf("event starting exactly at now must be excluded, got %d", len(got))
	}
}

func TestUpcomingStableOnTies(t *testing.T) {
	now := time.Now()
	at := now.Add(time.Hour)
	a := []Event{{ID: "a1", StartAt: at}, {ID: "a2", StartAt: at}}
	b := []Event{{ID: "b1", StartAt: at}}

	got := Upcoming(now, a, b)
	want := []string{"a1", "a2", "b1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("tie order broken at %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestUpcomingDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	src := []Event{
		{ID: "b", StartAt: now.Add(2 * time.Hour)},
		{ID: "a", StartAt: now.Add(time.Hour)},
	}
	Upcoming(now, src)
	if src[0].ID != "b" || src[1].ID != "a" {
		t.Error("input slice was reordered")
	}
}

func TestUpcomingEmpty(t *testing.T) {
	if got := Upcoming(time.Now()); len(got) != 0 {
		t.Errorf("expected empty, got %d", len(got))
	}
	if got := Upcoming(time.Now(), nil, []Event{}); len(got) != 0 {
		t.Errorf("expected empty, got %d", len(got))
	}
}
