//go:build windows

package remindcli

import (
	"github.com/studybuddy/remindd/common"
)

// pipePath returns the Windows named pipe path for the daemon.
func pipePath() string {
	return common.PipePath()
}
