package server

import (
	"os"
	"path/filepath"

	"github.com/studybuddy/remindd/common"
)

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "remindd.sock")
}
