//go:build !windows

package cmd

import "github.com/urfave/cli"

// checkWindowsService is a no-op outside Windows. Returns false
// indicating the process is not running as a service.
func checkWindowsService(ctx *cli.Context) (bool, error) {
	return false, nil
}
