//go:build windows

package cookies

import (
	"os"
	"path/filepath"
)

// browserProfilesIn builds the candidate list from the two Windows profile
// roots: Firefox-family lives under Roaming (appData), Chromium-family under
// Local (localAppData).
func browserProfilesIn(localAppData, appData string) []profile {
	out := []profile{
		{Browser: "Firefox", ProfilesIni: filepath.Join(appData, "Mozilla", "Firefox", "profiles.ini")},
		{Browser: "LibreWolf", ProfilesIni: filepath.Join(appData, "LibreWolf", "profiles.ini")},
	}

	chromiums := []struct {
		browser string
		base    []string
	}{
		{"Chrome", []string{"Google", "Chrome", "User Data", "Default"}},
		{"Chromium", []string{"Chromium", "User Data", "Default"}},
		{"Edge", []string{"Microsoft", "Edge", "User Data", "Default"}},
		{"Brave", []string{"BraveSoftware", "Brave-Browser", "User Data", "Default"}},
	}
	for _, c := range chromiums {
		base := filepath.Join(append([]string{localAppData}, c.base...)...)
		out = append(out,
			profile{Browser: c.browser, CookieFile: filepath.Join(base, "Network", "Cookies")},
			profile{Browser: c.browser, CookieFile: filepath.Join(base, "Cookies")},
		)
	}
	return out
}

func browserProfiles() []profile {
	return browserProfilesIn(os.Getenv("LOCALAPPDATA"), os.Getenv("APPDATA"))
}
