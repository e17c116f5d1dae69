package api

import (
	"encoding/json"
	"errors"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/server"
)

func (s *Api) historyHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	if s.history == nil {
		return common.UPDATE_HISTORY, nil, errors.New("journal disabled")
	}
	var m common.HistoryParams
	if len(body) > 0 {
		if err := json.Unmarshal(body, &m); err != nil {
			return common.UPDATE_HISTORY, nil, err
		}
	}
	entries, err := s.history.History(m.Limit)
	if err != nil {
		return common.UPDATE_HISTORY, nil, err
	}
	return common.UPDATE_HISTORY, &common.HistoryResponse{Entries: entries}, nil
}
