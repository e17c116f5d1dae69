package server

import (
	"fmt"
	"os"
	"strconv"

	"github.com/studybuddy/remindd/common"
)

// tcpPort returns the fallback TCP port from the environment, or the default.
func tcpPort() int {
	if port := os.Getenv(common.TCPPortEnv); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p >= 1 && p <= 65535 {
			return p
		}
	}
	return common.DefaultTCPPort
}

// forceTCP reports whether REMINDD_FORCE_TCP=1.
func forceTCP() bool {
	return os.Getenv(common.ForceTCPEnv) == "1"
}

// tcpAddress returns "localhost:{port}".
func tcpAddress() string {
	return fmt.Sprintf("%s:%d", common.TCPHost, tcpPort())
}
