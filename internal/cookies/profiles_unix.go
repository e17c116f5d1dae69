//go:build unix

package cookies

import (
	"os"
	"path/filepath"
	"runtime"
)

// browserProfilesIn builds the candidate list rooted at homeDir, most
// trustworthy store first. Firefox leads because its cookies are never
// OS-encrypted; Chromium-family stores only help when unencrypted.
func browserProfilesIn(homeDir string) []profile {
	darwin := runtime.GOOS == "darwin"

	join := func(parts ...string) string {
		return filepath.Join(append([]string{homeDir}, parts...)...)
	}

	var out []profile
	if darwin {
		out = append(out,
			profile{Browser: "Firefox", ProfilesIni: join("Library", "Application Support", "Firefox", "profiles.ini")},
			profile{Browser: "LibreWolf", ProfilesIni: join("Library", "Application Support", "librewolf", "profiles.ini")},
		)
	} else {
		out = append(out,
			profile{Browser: "Firefox", ProfilesIni: join(".mozilla", "firefox", "profiles.ini")},
			profile{Browser: "Firefox", ProfilesIni: join("snap", "firefox", "common", ".mozilla", "firefox", "profiles.ini")},
			profile{Browser: "LibreWolf", ProfilesIni: join(".librewolf", "profiles.ini")},
		)
	}

	chromiums := []struct {
		browser string
		darwin  []string
		linux   []string
	}{
		{"Chrome", []string{"Library", "Application Support", "Google", "Chrome", "Default"}, []string{".config", "google-chrome", "Default"}},
		{"Chromium", []string{"Library", "Application Support", "Chromium", "Default"}, []string{".config", "chromium", "Default"}},
		{"Edge", []string{"Library", "Application Support", "Microsoft Edge", "Default"}, []string{".config", "microsoft-edge", "Default"}},
		{"Brave", []string{"Library", "Application Support", "BraveSoftware", "Brave-Browser", "Default"}, []string{".config", "BraveSoftware", "Brave-Browser", "Default"}},
	}
	for _, c := range chromiums {
		base := c.linux
		if darwin {
			base = c.darwin
		}
		// Newer Chromium keeps the store under Network/, older directly in
		// the profile.
		out = append(out,
			profile{Browser: c.browser, CookieFile: join(append(base, "Network", "Cookies")...)},
			profile{Browser: c.browser, CookieFile: join(append(base, "Cookies")...)},
		)
	}
	return out
}

func browserProfiles() []profile {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return browserProfilesIn(home)
}
