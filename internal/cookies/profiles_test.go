package cookies

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func makeSQLiteWithTable(t *testing.T, path, table string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE " + table + " (id INTEGER)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
}

func writeProfilesIni(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "profiles.ini")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write ini: %v", err)
	}
	return path
}

func TestDefaultProfileDirInstallSection(t *testing.T) {
	dir := t.TempDir()
	ini := writeProfilesIni(t, dir, `[Install4F96D1932A9F858E]
Default=Profiles/abc.default-release
Locked=1

[Profile0]
Name=default
Path=Profiles/old.default
Default=1
`)

	want := filepath.Join(dir, "Profiles", "abc.default-release")
	if got := defaultProfileDir(ini); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDefaultProfileDirMarkedProfile(t *testing.T) {
	dir := t.TempDir()
	ini := writeProfilesIni(t, dir, `[Profile1]
Name=extra
Path=Profiles/extra

[Profile0]
Name=default
Path=Profiles/abc.default
Default=1
`)

	want := filepath.Join(dir, "Profiles", "abc.default")
	if got := defaultProfileDir(ini); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDefaultProfileDirNoDefault(t *testing.T) {
	dir := t.TempDir()
	ini := writeProfilesIni(t, dir, `[Profile0]
Name=default
Path=Profiles/abc
`)
	if got := defaultProfileDir(ini); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := defaultProfileDir(filepath.Join(dir, "missing.ini")); got != "" {
		t.Errorf("missing file: got %q, want empty", got)
	}
}

func TestScanProfilesPriorityOrder(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Unix()

	// A Firefox profile resolved through profiles.ini.
	ffRoot := t.TempDir()
	profDir := filepath.Join(ffRoot, "Profiles", "abc.default")
	if err := os.MkdirAll(profDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	makeFirefoxStore(t, profDir, []firefoxRow{
		{"session", "tok-ff", testDomain, "/", future, 1},
	})
	ini := writeProfilesIni(t, ffRoot, "[Profile0]\nPath=Profiles/abc.default\nDefault=1\n")

	// A Chromium store that would also match.
	crPath := makeChromiumStore(t, t.TempDir(), []chromiumRow{
		{"session", "tok-cr", "." + testDomain, "/", toChromeTime(time.Now().Add(24 * time.Hour)), 1},
	})

	c, src, err := scanProfiles(testDomain, "session", []profile{
		{Browser: "Firefox", ProfilesIni: ini},
		{Browser: "Chrome", CookieFile: crPath},
	})
	if err != nil {
		t.Fatalf("scanProfiles: %v", err)
	}
	if c.Value != "tok-ff" || src.Browser != "Firefox" {
		t.Errorf("expected the first candidate to win, got %s from %s", c.Name, src.Browser)
	}
}

func TestScanProfilesSkipsBrokenStores(t *testing.T) {
	future := toChromeTime(time.Now().Add(24 * time.Hour))
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken")
	os.WriteFile(broken, []byte("junk"), 0600)

	good := makeChromiumStore(t, t.TempDir(), []chromiumRow{
		{"session", "tok-cr", testDomain, "/", future, 0},
	})

	c, src, err := scanProfiles(testDomain, "session", []profile{
		{Browser: "Chrome", CookieFile: broken},
		{Browser: "Edge", CookieFile: good},
	})
	if err != nil {
		t.Fatalf("scanProfiles: %v", err)
	}
	if c.Value != "tok-cr" || src.Browser != "Edge" {
		t.Errorf("expected fallthrough to the next store, got %+v", src)
	}
}

func TestScanProfilesNothingFound(t *testing.T) {
	_, _, err := scanProfiles(testDomain, "session", []profile{
		{Browser: "Chrome", CookieFile: filepath.Join(t.TempDir(), "absent")},
	})
	if err == nil {
		t.Error("expected error when no store matches")
	}
}
