package api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/server"
)

func (s *Api) refreshHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	if s.core == nil {
		return common.UPDATE_REFRESH, nil, errors.New("scheduler not running")
	}
	resp, err := s.core.Refresh(context.Background())
	if err != nil {
		return common.UPDATE_REFRESH, nil, err
	}
	return common.UPDATE_REFRESH, &resp, nil
}
