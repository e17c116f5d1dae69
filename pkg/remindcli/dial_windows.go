//go:build windows

package remindcli

import (
	"net"

	"github.com/Microsoft/go-winio"
	"github.com/studybuddy/remindd/common"
)

// dialPipeFunc is swapped in tests to avoid touching real pipes.
var dialPipeFunc = winio.DialPipe

func dial() (net.Conn, error) {
	if forceTCP() {
		debugLog("forcing TCP connection to %s", tcpAddress())
		return net.Dial("tcp", tcpAddress())
	}
	timeout := common.DefaultDialTimeout
	conn, err := dialPipeFunc(pipePath(), &timeout)
	if err == nil {
		return conn, nil
	}
	debugLog("named pipe dial failed (%v), falling back to TCP", err)
	return net.Dial("tcp", tcpAddress())
}

// getConnectionPath reports where the daemon is expected to listen.
func getConnectionPath() string {
	if forceTCP() {
		return tcpAddress()
	}
	return pipePath()
}

// isDaemonRunning probes the daemon's listener without keeping the
// connection open.
func isDaemonRunning() bool {
	if !forceTCP() {
		timeout := socketDialTimeout
		conn, err := dialPipeFunc(pipePath(), &timeout)
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
