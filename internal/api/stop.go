package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/server"
)

// stopDaemonHandler acknowledges the request, then triggers shutdown after a
// short grace so the acknowledgment reaches the client.
func (s *Api) stopDaemonHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	if s.requestStop == nil {
		return common.UPDATE_STOP_DAEMON, nil, errors.New("shutdown not supported")
	}
	s.log.Info("api: shutdown requested")
	go func() {
		time.Sleep(100 * time.Millisecond)
		s.requestStop()
	}()
	return common.UPDATE_STOP_DAEMON, &common.StopDaemonResponse{Stopping: true}, nil
}
