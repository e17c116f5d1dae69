package cookies

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Chromium stores timestamps as microseconds since 1601-01-01 (the Windows
// FILETIME epoch), 11644473600 seconds before the Unix epoch.
const chromeEpochOffset int64 = 11644473600

func chromeTime(usec int64) time.Time {
	return time.Unix(usec/1e6-chromeEpochOffset, 0)
}

func toChromeTime(t time.Time) int64 {
	return (t.Unix() + chromeEpochOffset) * 1e6
}

// queryChromium reads matching cookies from a copied Chromium-family cookie
// database. Cookies with an empty value column are OS-encrypted and skipped
// by the query; decryption is out of scope, the user can fall back to
// Firefox or to pasting the token.
func queryChromium(dbPath, domain, name string) ([]Cookie, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?immutable=1")
	if err != nil {
		return nil, fmt.Errorf("open chromium store: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT name, value, host_key, path, expires_utc, is_secure
		FROM cookies
		WHERE name = ?
		  AND (host_key = ? OR host_key = ? OR host_key LIKE ?)
		  AND value != ''
		  AND expires_utc > ?
		ORDER BY length(path) DESC, expires_utc DESC
	`, name, domain, "."+domain, "%."+domain, toChromeTime(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("query chromium store: %w", err)
	}
	defer rows.Close()

	var out []Cookie
	for rows.Next() {
		var (
			c       Cookie
			expires int64
			secure  int
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &expires, &secure); err != nil {
			return nil, fmt.Errorf("read chromium store: %w", err)
		}
		c.Expires = chromeTime(expires)
		c.Secure = secure != 0
		out = append(out, c)
	}
	return out, rows.Err()
}
