//go:build windows

package remindcli

import (
	"os"
	"os/exec"
)

// spawnDaemon re-executes this binary with the daemon subcommand,
// detached from the CLI process.
func spawnDaemon() error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	cmd := exec.Command(executable, "daemon")
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
