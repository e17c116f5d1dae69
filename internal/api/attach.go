package api

import (
	"encoding/json"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/server"
)

// attachHandler subscribes the connection to notification broadcasts. The
// connection stays attached until it closes; the server detaches it on
// disconnect.
func (s *Api) attachHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	pool.Attach(sconn)
	return common.UPDATE_ATTACH, &common.AttachResponse{Attached: true}, nil
}
