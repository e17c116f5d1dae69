//go:build !windows

package server

import (
	"fmt"
	"net"
	"os"
)

// createListener creates a Unix socket listener with TCP fallback.
// Transport priority: Unix socket > TCP.
func (s *Server) createListener() (net.Listener, error) {
	if forceTCP() {
		s.log.Info("server: force TCP mode enabled")
		return net.Listen("tcp", tcpAddress())
	}

	path := socketPath()
	_ = os.Remove(path)
	l, err := net.ListenUnix("unix", &net.UnixAddr{
		Name: path,
		Net:  "unix",
	})
	if err != nil {
		s.log.Warning("server: unix socket failed: %v", err)
		s.log.Info("server: falling back to tcp")
		tcpListener, tcpErr := net.Listen("tcp", tcpAddress())
		if tcpErr != nil {
			return nil, fmt.Errorf("error listening: %s", tcpErr.Error())
		}
		return tcpListener, nil
	}
	setSocketPermissions(path)
	return l, nil
}
