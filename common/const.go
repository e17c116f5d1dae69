package common

import "time"

// DefaultDialTimeout bounds named pipe dial attempts on Windows.
const DefaultDialTimeout = 5 * time.Second

// UpdateType identifies an RPC method or a server-pushed update on the
// daemon socket.
type UpdateType string

const (
	UPDATE_STATUS       UpdateType = "status"
	UPDATE_EVENTS       UpdateType = "events"
	UPDATE_REFRESH      UpdateType = "refresh"
	UPDATE_HISTORY      UpdateType = "history"
	UPDATE_ATTACH       UpdateType = "attach"
	UPDATE_NOTIFICATION UpdateType = "notification"
	UPDATE_STOP_DAEMON  UpdateType = "stop_daemon"
	UPDATE_VERSION      UpdateType = "version"
)

// NotificationKind is the severity of a user-visible toast.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)

// MaxMessageSize is the largest frame accepted on the daemon socket.
// Large enough for any event list response, small enough to reject garbage.
const MaxMessageSize = 4 << 20
