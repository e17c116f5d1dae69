//go:build !windows

package remindcli

import (
	"net"
)

// dialFunc is swapped in tests to avoid touching real sockets.
var dialFunc = net.Dial

func dial() (net.Conn, error) {
	if forceTCP() {
		debugLog("forcing TCP connection to %s", tcpAddress())
		return dialFunc("tcp", tcpAddress())
	}
	conn, err := dialFunc("unix", socketPath())
	if err == nil {
		return conn, nil
	}
	debugLog("unix socket dial failed (%v), falling back to TCP", err)
	return dialFunc("tcp", tcpAddress())
}

// getConnectionPath reports where the daemon is expected to listen.
func getConnectionPath() string {
	if forceTCP() {
		return tcpAddress()
	}
	return socketPath()
}

// isDaemonRunning probes the daemon's listener without keeping the
// connection open.
func isDaemonRunning() bool {
	if !forceTCP() {
		conn, err := net.DialTimeout("unix", socketPath(), socketDialTimeout)
		if err == nil {
			conn.Close()
			return true
		}
	}
	conn, err := net.DialTimeout("tcp", tcpAddress(), socketDialTimeout)
	if err == nil {
		conn.Close()
		return true
	}
	return false
}
