package remindcli

import (
	"fmt"
	"os"
)

// SuppressVersionCheckEnv disables the client-daemon version mismatch
// warning when set to "1".
const SuppressVersionCheckEnv = "REMINDD_SUPPRESS_VERSION_CHECK"

// CheckVersionMismatch warns on stderr when the client and daemon were
// built from different versions. The daemon keeps running either way.
func CheckVersionMismatch(c *Client, clientVersion string) {
	if os.Getenv(SuppressVersionCheckEnv) == "1" {
		return
	}
	v, err := c.GetDaemonVersion()
	if err != nil {
		debugLog("version check failed: %v", err)
		return
	}
	if v.Version != clientVersion {
		fmt.Fprintf(os.Stderr,
			"warning: client version %s does not match daemon version %s; restart the daemon with 'remind stop-daemon'\n",
			clientVersion, v.Version)
	}
}
