//go:build !windows

package cmd

import "github.com/urfave/cli"

// getPlatformCommands returns platform-specific CLI commands. There are
// none outside Windows.
func getPlatformCommands() []cli.Command {
	return nil
}
