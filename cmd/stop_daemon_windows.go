//go:build windows

package cmd

import (
	"fmt"
	"os"
)

// killDaemon terminates the daemon process. Windows has no SIGTERM, so
// this is always a hard kill; prefer the socket stop path.
func killDaemon(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("process not found: %w", err)
	}
	if err := process.Kill(); err != nil {
		return fmt.Errorf("failed to kill process: %w", err)
	}
	return nil
}
