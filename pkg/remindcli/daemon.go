package remindcli

import (
	"fmt"
	"time"
)

const (
	daemonStartTimeout = 3 * time.Second
	socketPollInterval = 50 * time.Millisecond
	socketDialTimeout  = 100 * time.Millisecond
)

// ensureDaemon starts the daemon if it is not already listening and
// waits for its socket to come up.
func ensureDaemon() error {
	if isDaemonRunning() {
		return nil
	}
	debugLog("daemon not running, spawning")
	if err := spawnDaemon(); err != nil {
		return fmt.Errorf("spawn daemon: %w", err)
	}
	return waitForSocket()
}

func waitForSocket() error {
	deadline := time.Now().Add(daemonStartTimeout)
	for time.Now().Before(deadline) {
		if isDaemonRunning() {
			return nil
		}
		time.Sleep(socketPollInterval)
	}
	return fmt.Errorf("daemon did not start listening on %s within %s",
		getConnectionPath(), daemonStartTimeout)
}
