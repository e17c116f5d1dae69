//go:build unix

package cookies

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestBrowserProfilesInOrderAndRoots(t *testing.T) {
	home := filepath.Join("/", "home", "student")
	got := browserProfilesIn(home)

	if len(got) == 0 {
		t.Fatal("no candidates")
	}
	if got[0].Browser != "Firefox" || got[0].ProfilesIni == "" {
		t.Fatalf("Firefox must lead the scan, got %+v", got[0])
	}

	var sawChrome, sawEdge bool
	for _, p := range got {
		path := p.ProfilesIni
		if path == "" {
			path = p.CookieFile
		}
		if !strings.HasPrefix(path, home) {
			t.Errorf("%s candidate escapes home: %s", p.Browser, path)
		}
		switch p.Browser {
		case "Chrome":
			sawChrome = true
		case "Edge":
			sawEdge = true
		}
	}
	if !sawChrome || !sawEdge {
		t.Errorf("missing Chromium-family candidates (chrome=%v edge=%v)", sawChrome, sawEdge)
	}

	if runtime.GOOS == "darwin" {
		if !strings.Contains(got[0].ProfilesIni, "Application Support") {
			t.Errorf("darwin Firefox path: %s", got[0].ProfilesIni)
		}
	} else {
		if !strings.Contains(got[0].ProfilesIni, ".mozilla") {
			t.Errorf("linux Firefox path: %s", got[0].ProfilesIni)
		}
	}
}

func TestBrowserProfilesChromiumHasBothLayouts(t *testing.T) {
	got := browserProfilesIn("/home/student")

	var network, direct bool
	for _, p := range got {
		if p.Browser != "Chrome" {
			continue
		}
		if strings.Contains(p.CookieFile, filepath.Join("Network", "Cookies")) {
			network = true
		} else if strings.HasSuffix(p.CookieFile, "Cookies") {
			direct = true
		}
	}
	if !network || !direct {
		t.Errorf("Chrome needs both Network/Cookies and Cookies candidates (network=%v direct=%v)", network, direct)
	}
}
