package cookies

import "fmt"

// FromStore reads the named session cookie for domain from one store file.
// The store is snapshotted first so the browser may keep it locked.
func FromStore(path, domain, name string) (*Cookie, *Source, error) {
	kind, err := sniffStore(path)
	if err != nil {
		return nil, nil, err
	}

	copied, cleanup, err := snapshot(path)
	if err != nil {
		return nil, nil, err
	}
	defer cleanup()

	var (
		found   []Cookie
		browser string
	)
	switch kind {
	case kindFirefox:
		browser = "Firefox"
		found, err = queryFirefox(copied, domain, name)
	case kindChromium:
		browser = "Chromium"
		found, err = queryChromium(copied, domain, name)
	default:
		return nil, nil, fmt.Errorf("cookie store %s has an unsupported schema", path)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(found) == 0 {
		return nil, nil, fmt.Errorf("%w for %s in %s", ErrNoSessionCookie, domain, path)
	}

	c := found[0]
	return &c, &Source{Browser: browser, Path: path}, nil
}

// FromBrowser scans the installed browsers' profiles in priority order and
// returns the first matching session cookie.
func FromBrowser(domain, name string) (*Cookie, *Source, error) {
	return scanProfiles(domain, name, browserProfiles())
}
