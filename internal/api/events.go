package api

import (
	"encoding/json"
	"errors"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/server"
	"github.com/studybuddy/remindd/pkg/buddylib"
)

func (s *Api) eventsHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	if s.core == nil {
		return common.UPDATE_EVENTS, nil, errors.New("scheduler not running")
	}
	var m common.EventsParams
	if len(body) > 0 {
		if err := json.Unmarshal(body, &m); err != nil {
			return common.UPDATE_EVENTS, nil, err
		}
	}
	switch m.Kind {
	case "", string(buddylib.KindActivity), string(buddylib.KindGroupSession):
	default:
		return common.UPDATE_EVENTS, nil, errors.New("unknown kind: " + m.Kind)
	}

	events := s.core.UpcomingEvents()
	if m.Kind != "" {
		filtered := make([]buddylib.Event, 0, len(events))
		for _, ev := range events {
			if string(ev.Kind) == m.Kind {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}
	return common.UPDATE_EVENTS, &common.EventsResponse{Events: events}, nil
}
