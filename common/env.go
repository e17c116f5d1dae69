// Package common provides shared types and constants used across the remindd
// client-server communication layer.
package common

// Environment variable names for configuration.
const (
	// SocketPathEnv is the environment variable for a custom socket path.
	SocketPathEnv = "REMINDD_SOCKET_PATH"

	// TCPPortEnv is the environment variable for a custom TCP port.
	TCPPortEnv = "REMINDD_TCP_PORT"

	// ForceTCPEnv is the environment variable to force TCP connections.
	ForceTCPEnv = "REMINDD_FORCE_TCP"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "REMINDD_DEBUG"

	// ConfigPathEnv is the environment variable for a custom config file path.
	ConfigPathEnv = "REMINDD_CONFIG_PATH"

	// PipeNameEnv is the environment variable for a custom named pipe (Windows).
	PipeNameEnv = "REMINDD_PIPE_NAME"
)

// Defaults for the TCP fallback transport.
const (
	DefaultTCPPort = 3859
	TCPHost        = "localhost"
)
