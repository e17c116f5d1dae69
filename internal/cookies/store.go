package cookies

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteMagic = "SQLite format 3\x00"

// sniffStore decides which schema the file at path carries. Both supported
// stores are SQLite databases; they differ only in their cookie table.
func sniffStore(path string) (storeKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return kindUnknown, fmt.Errorf("cookie store %s: %w", path, err)
	}
	if info.IsDir() || info.Size() == 0 {
		return kindUnknown, fmt.Errorf("cookie store %s is not a usable database file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return kindUnknown, fmt.Errorf("cookie store %s: %w", path, err)
	}
	header := make([]byte, len(sqliteMagic))
	_, err = io.ReadFull(f, header)
	f.Close()
	if err != nil || string(header) != sqliteMagic {
		return kindUnknown, fmt.Errorf("cookie store %s is not a SQLite database", path)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return kindUnknown, fmt.Errorf("cookie store %s: %w", path, err)
	}
	defer db.Close()

	var table string
	if err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('moz_cookies','cookies')`,
	).Scan(&table); err != nil {
		return kindUnknown, fmt.Errorf("cookie store %s has no known cookie table", path)
	}
	if table == "moz_cookies" {
		return kindFirefox, nil
	}
	return kindChromium, nil
}

// snapshot copies a store file (and its -wal/-shm companions when present)
// into a temp directory, so reading never contends with the browser's own
// lock on the live database. The caller must run the returned cleanup.
func snapshot(path string) (copied string, cleanup func(), err error) {
	dir, err := os.MkdirTemp("", "remind-session-*")
	if err != nil {
		return "", nil, err
	}
	cleanup = func() { os.RemoveAll(dir) }

	base := filepath.Base(path)
	if err := copyFile(path, filepath.Join(dir, base)); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("snapshot cookie store: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if _, err := os.Stat(path + suffix); err == nil {
			_ = copyFile(path+suffix, filepath.Join(dir, base+suffix))
		}
	}
	return filepath.Join(dir, base), cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
