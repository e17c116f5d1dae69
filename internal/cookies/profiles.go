package cookies

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// profile is one place a browser may keep its cookie store.
type profile struct {
	Browser string

	// ProfilesIni points at a Firefox-style profiles.ini; the default
	// profile's cookies.sqlite is resolved through it.
	ProfilesIni string

	// CookieFile is a direct store path for Chromium-family browsers.
	CookieFile string
}

// scanProfiles tries each candidate in order and returns the first session
// cookie found. Unreadable or schema-less stores are skipped, not fatal; the
// next browser may still have a usable session.
func scanProfiles(domain, name string, candidates []profile) (*Cookie, *Source, error) {
	for _, p := range candidates {
		path := p.CookieFile
		if p.ProfilesIni != "" {
			dir := defaultProfileDir(p.ProfilesIni)
			if dir == "" {
				continue
			}
			path = filepath.Join(dir, "cookies.sqlite")
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		c, src, err := FromStore(path, domain, name)
		if err != nil {
			continue
		}
		src.Browser = p.Browser
		return c, src, nil
	}
	return nil, nil, fmt.Errorf("no browser has a session cookie for %s; log in to Study Buddy in Firefox or Chrome first", domain)
}

// defaultProfileDir resolves the default profile directory from a
// Firefox-style profiles.ini. Modern Firefox records it under an [Install*]
// section's Default key; older layouts mark a [Profile*] section Default=1.
// Returns "" when the file is missing or names no default.
func defaultProfileDir(iniPath string) string {
	f, err := os.Open(iniPath)
	if err != nil {
		return ""
	}
	defer f.Close()

	base := filepath.Dir(iniPath)
	var installDir, markedDir string
	var section, sectionPath string
	var sectionDefault bool

	flush := func() {
		if strings.HasPrefix(section, "Profile") && sectionDefault && markedDir == "" {
			markedDir = sectionPath
		}
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, ";"):
		case strings.HasPrefix(line, "["):
			flush()
			section = strings.Trim(line, "[]")
			sectionPath = ""
			sectionDefault = false
		default:
			key, val, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			key, val = strings.TrimSpace(key), strings.TrimSpace(val)
			switch {
			case strings.HasPrefix(section, "Install") && key == "Default" && installDir == "":
				installDir = filepath.Join(base, filepath.FromSlash(val))
			case strings.HasPrefix(section, "Profile") && key == "Path":
				sectionPath = filepath.Join(base, filepath.FromSlash(val))
			case strings.HasPrefix(section, "Profile") && key == "Default" && val == "1":
				sectionDefault = true
			}
		}
	}
	flush()

	if installDir != "" {
		return installDir
	}
	return markedDir
}
