package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/studybuddy/remindd/pkg/remindcli"
)

func stopDaemon(ctx *cli.Context) error {
	// Ask over the socket first so the scheduler tears down cleanly.
	if client, err := remindcli.NewClient(); err == nil {
		defer client.Close()
		if _, err := client.StopDaemon(); err == nil {
			fmt.Println("Daemon stopping...")
			return nil
		}
	}

	pid, err := ReadPidFile()
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Daemon is not running (PID file not found)")
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error reading PID file: %v\n", err)
		return nil
	}

	fmt.Printf("Stopping daemon (PID %d)...\n", pid)
	if err := killDaemon(pid); err != nil {
		fmt.Fprintf(os.Stderr, "Error stopping daemon: %v\n", err)
		return nil
	}

	// The daemon's deferred cleanup removes the PID file.
	fmt.Println("Daemon stopped successfully")
	return nil
}
