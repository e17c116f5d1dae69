package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/server"
	"github.com/studybuddy/remindd/pkg/logger"
)

// Notifier fans reminder toasts out to every attached surface: socket
// clients that ran attach, and the web status surface's streams.
type Notifier struct {
	log  logger.Logger
	pool *server.Pool
	web  *server.WebServer
}

// NewNotifier creates a Notifier. web may be nil when the web surface is
// disabled.
func NewNotifier(l logger.Logger, pool *server.Pool, web *server.WebServer) *Notifier {
	return &Notifier{log: l, pool: pool, web: web}
}

// Show broadcasts one toast. Fire-and-forget; delivery failures only drop
// the failing subscriber.
func (n *Notifier) Show(kind common.NotificationKind, message string) {
	note := common.Notification{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		At:      time.Now(),
	}
	if n.pool != nil {
		n.pool.Broadcast(server.MakeResult(common.UPDATE_NOTIFICATION, &note))
	}
	if n.web != nil {
		n.web.Notify(note)
	}
}
