package api

import (
	"encoding/json"
	"errors"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/server"
)

func (s *Api) statusHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	if s.core == nil {
		return common.UPDATE_STATUS, nil, errors.New("scheduler not running")
	}
	st := s.core.Status()
	return common.UPDATE_STATUS, &st, nil
}
