package cookies

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromStoreFirefox(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Unix()
	path := makeFirefoxStore(t, t.TempDir(), []firefoxRow{
		{"session", "tok-ff", testDomain, "/", future, 1},
	})

	c, src, err := FromStore(path, testDomain, "session")
	if err != nil {
		t.Fatalf("FromStore: %v", err)
	}
	if c.Value != "tok-ff" {
		t.Errorf("wrong value")
	}
	if src.Browser != "Firefox" || src.Path != path {
		t.Errorf("source = %+v", src)
	}
}

func TestFromStoreChromium(t *testing.T) {
	future := toChromeTime(time.Now().Add(24 * time.Hour))
	path := makeChromiumStore(t, t.TempDir(), []chromiumRow{
		{"session", "tok-cr", "." + testDomain, "/", future, 1},
	})

	c, src, err := FromStore(path, testDomain, "session")
	if err != nil {
		t.Fatalf("FromStore: %v", err)
	}
	if c.Value != "tok-cr" {
		t.Errorf("wrong value")
	}
	if src.Browser != "Chromium" {
		t.Errorf("source = %+v", src)
	}
}

func TestFromStoreNoMatch(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Unix()
	path := makeFirefoxStore(t, t.TempDir(), []firefoxRow{
		{"theme", "dark", testDomain, "/", future, 0},
	})

	_, _, err := FromStore(path, testDomain, "session")
	if !errors.Is(err, ErrNoSessionCookie) {
		t.Errorf("expected ErrNoSessionCookie, got %v", err)
	}
}

func TestFromStoreRejectsNonStores(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "nope")
	if _, _, err := FromStore(missing, testDomain, "session"); err == nil {
		t.Error("missing file accepted")
	}

	empty := filepath.Join(dir, "empty")
	os.WriteFile(empty, nil, 0600)
	if _, _, err := FromStore(empty, testDomain, "session"); err == nil {
		t.Error("empty file accepted")
	}

	text := filepath.Join(dir, "notes.txt")
	os.WriteFile(text, []byte("not a database"), 0600)
	if _, _, err := FromStore(text, testDomain, "session"); err == nil {
		t.Error("plain text accepted")
	}

	if _, _, err := FromStore(dir, testDomain, "session"); err == nil {
		t.Error("directory accepted")
	}
}

func TestFromStoreUnknownSchema(t *testing.T) {
	// A valid SQLite file whose tables are neither store's.
	path := filepath.Join(t.TempDir(), "other.db")
	makeSQLiteWithTable(t, path, "bookmarks")

	if _, _, err := FromStore(path, testDomain, "session"); err == nil {
		t.Error("unknown schema accepted")
	}
}

func TestSnapshotCopiesCompanions(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cookies.sqlite")
	os.WriteFile(src, []byte(sqliteMagic+"rest"), 0600)
	os.WriteFile(src+"-wal", []byte("wal"), 0600)
	os.WriteFile(src+"-shm", []byte("shm"), 0600)

	copied, cleanup, err := snapshot(src)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	defer cleanup()

	if copied == src {
		t.Fatal("snapshot returned the original path")
	}
	for _, p := range []string{copied, copied + "-wal", copied + "-shm"} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing copy %s: %v", p, err)
		}
	}

	cleanup()
	if _, err := os.Stat(filepath.Dir(copied)); !os.IsNotExist(err) {
		t.Error("cleanup left the temp dir behind")
	}
}
