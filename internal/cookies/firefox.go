package cookies

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// queryFirefox reads matching cookies from a copied moz_cookies database.
// Rows come back best-first: most specific path, then latest expiry.
func queryFirefox(dbPath, domain, name string) ([]Cookie, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?immutable=1")
	if err != nil {
		return nil, fmt.Errorf("open firefox store: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT name, value, host, path, expiry, isSecure
		FROM moz_cookies
		WHERE name = ?
		  AND (host = ? OR host = ? OR host LIKE ?)
		  AND expiry > ?
		ORDER BY length(path) DESC, expiry DESC
	`, name, domain, "."+domain, "%."+domain, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("query firefox store: %w", err)
	}
	defer rows.Close()

	var out []Cookie
	for rows.Next() {
		var (
			c      Cookie
			expiry int64
			secure int
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &expiry, &secure); err != nil {
			return nil, fmt.Errorf("read firefox store: %w", err)
		}
		c.Expires = time.Unix(expiry, 0)
		c.Secure = secure != 0
		out = append(out, c)
	}
	return out, rows.Err()
}
