//go:build !windows

package remindcli

import (
	"os"
	"os/exec"
	"syscall"
)

// spawnDaemon re-executes this binary with the daemon subcommand in its
// own process group so it survives the CLI exiting.
func spawnDaemon() error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	cmd := exec.Command(executable, "daemon")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
