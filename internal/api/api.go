// Package api wires scheduler operations to the daemon's socket protocol.
// Each handler unmarshals one request shape, calls into the scheduler or the
// journal, and returns one response shape from the common package.
package api

import (
	"context"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/server"
	"github.com/studybuddy/remindd/pkg/buddylib"
	"github.com/studybuddy/remindd/pkg/logger"
)

// Core is the scheduler surface the socket API needs.
type Core interface {
	Status() common.StatusResponse
	Refresh(ctx context.Context) (common.RefreshResponse, error)
	UpcomingEvents() []buddylib.Event
}

// History reads the dispatch journal. May be nil when the journal is disabled.
type History interface {
	History(limit int) ([]common.HistoryEntry, error)
}

type Api struct {
	log     logger.Logger
	core    Core
	history History

	version   string
	commit    string
	buildType string

	// requestStop asks the daemon to shut down. Called from the stop handler.
	requestStop func()
}

func NewApi(l logger.Logger, core Core, history History, version, commit, buildType string, requestStop func()) *Api {
	return &Api{
		log:         l,
		core:        core,
		history:     history,
		version:     version,
		commit:      commit,
		buildType:   buildType,
		requestStop: requestStop,
	}
}

func (s *Api) RegisterHandlers(srv *server.Server) {
	srv.RegisterHandler(common.UPDATE_STATUS, s.statusHandler)
	srv.RegisterHandler(common.UPDATE_EVENTS, s.eventsHandler)
	srv.RegisterHandler(common.UPDATE_REFRESH, s.refreshHandler)
	srv.RegisterHandler(common.UPDATE_HISTORY, s.historyHandler)
	srv.RegisterHandler(common.UPDATE_ATTACH, s.attachHandler)
	srv.RegisterHandler(common.UPDATE_STOP_DAEMON, s.stopDaemonHandler)
	srv.RegisterHandler(common.UPDATE_VERSION, s.versionHandler)
}
