package journal

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/studybuddy/remindd/common"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func entryAt(id string, sentAt time.Time, ok bool) common.HistoryEntry {
	e := common.HistoryEntry{
		EventID:    id,
		EventKind:  "activity",
		Rule:       "1 hour before",
		EventStart: sentAt.Add(time.Hour),
		SentAt:     sentAt,
		Recipient:  "1234567@students.wits.ac.za",
		Subject:    "Reminder: Activity \"Essay\" starts in 1 hour",
		Ok:         ok,
	}
	if !ok {
		e.Error = "smtp down"
	}
	return e
}

func TestRecordAndHistory(t *testing.T) {
	j := openTestJournal(t)
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	if err := j.Record(entryAt("a1", base, true)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Record(entryAt("a2", base.Add(time.Minute), false)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := j.History(0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("History returned %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].EventID != "a2" || entries[1].EventID != "a1" {
		t.Fatalf("unexpected order: %s, %s", entries[0].EventID, entries[1].EventID)
	}
	if entries[0].Ok || entries[0].Error != "smtp down" {
		t.Fatalf("failure entry lost its error: %+v", entries[0])
	}
	if !entries[1].SentAt.Equal(base) {
		t.Fatalf("SentAt = %v, want %v", entries[1].SentAt, base)
	}
}

func TestHistoryLimit(t *testing.T) {
	j := openTestJournal(t)
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		if err := j.Record(entryAt(fmt.Sprintf("a%d", i), base.Add(time.Duration(i)*time.Minute), true)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := j.History(3)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("History returned %d entries, want 3", len(entries))
	}
	if entries[0].EventID != "a9" {
		t.Fatalf("newest entry = %s, want a9", entries[0].EventID)
	}
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j.Close()
	if err := j.Record(entryAt("a1", time.Now(), true)); err != nil {
		t.Fatalf("Record: %v", err)
	}
}

func TestHistoryEmpty(t *testing.T) {
	j := openTestJournal(t)
	entries, err := j.History(0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d", len(entries))
	}
}
