package server

import (
	"context"
	"net/http"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/pkg/buddylib"
)

// Custom JSON-RPC error codes for scheduler operations.
const (
	codeSchedulerDown = jrpc2.Code(-32001)
	codeJournalError  = jrpc2.Code(-32002)
	codeInvalidParams = jrpc2.Code(-32602)
)

// Core is the scheduler surface exposed over JSON-RPC.
type Core interface {
	Status() common.StatusResponse
	Refresh(ctx context.Context) (common.RefreshResponse, error)
	UpcomingEvents() []buddylib.Event
}

// HistorySource reads the dispatch journal. May be absent.
type HistorySource interface {
	History(limit int) ([]common.HistoryEntry, error)
}

// RPCConfig holds configuration for the JSON-RPC endpoint.
type RPCConfig struct {
	Secret    string // Auth token (required -- empty means RPC disabled)
	Version   string // Daemon version
	Commit    string // Git commit
	BuildType string // Build type
}

// RPCServer manages the JSON-RPC 2.0 bridge and method handlers. The same
// method set serves the HTTP bridge and WebSocket channels.
type RPCServer struct {
	bridge    jhttp.Bridge
	methods   handler.Map
	secret    string
	version   string
	commit    string
	buildType string
	core      Core
	history   HistorySource
}

// EventsResult is the response for agenda.list.
type EventsResult struct {
	Events []buddylib.Event `json:"events"`
}

// HistoryResult is the response for journal.history.
type HistoryResult struct {
	Entries []common.HistoryEntry `json:"entries"`
}

// NewRPCServer creates an RPCServer with method handlers and an HTTP bridge.
// history may be nil when the journal is disabled.
func NewRPCServer(cfg *RPCConfig, core Core, history HistorySource) *RPCServer {
	rs := &RPCServer{
		secret:    cfg.Secret,
		version:   cfg.Version,
		commit:    cfg.Commit,
		buildType: cfg.BuildType,
		core:      core,
		history:   history,
	}

	rs.methods = handler.Map{
		"system.getVersion": handler.New(rs.systemGetVersion),
		"scheduler.status":  handler.New(rs.schedulerStatus),
		"scheduler.refresh": handler.New(rs.schedulerRefresh),
		"agenda.list":       handler.New(rs.agendaList),
		"journal.history":   handler.New(rs.journalHistory),
	}

	rs.bridge = jhttp.NewBridge(rs.methods, nil)
	return rs
}

// Handler returns the authenticated HTTP handler for the /rpc endpoint.
func (rs *RPCServer) Handler() http.Handler {
	return requireToken(rs.secret, rs.bridge)
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*common.VersionResponse, error) {
	return &common.VersionResponse{
		Version:   rs.version,
		Commit:    rs.commit,
		BuildType: rs.buildType,
	}, nil
}

func (rs *RPCServer) schedulerStatus(_ context.Context) (*common.StatusResponse, error) {
	if rs.core == nil {
		return nil, &jrpc2.Error{Code: codeSchedulerDown, Message: "scheduler not running"}
	}
	st := rs.core.Status()
	return &st, nil
}

func (rs *RPCServer) schedulerRefresh(ctx context.Context) (*common.RefreshResponse, error) {
	if rs.core == nil {
		return nil, &jrpc2.Error{Code: codeSchedulerDown, Message: "scheduler not running"}
	}
	resp, err := rs.core.Refresh(ctx)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeSchedulerDown, Message: err.Error()}
	}
	return &resp, nil
}

func (rs *RPCServer) agendaList(_ context.Context, p *common.EventsParams) (*EventsResult, error) {
	if rs.core == nil {
		return nil, &jrpc2.Error{Code: codeSchedulerDown, Message: "scheduler not running"}
	}
	switch p.Kind {
	case "", string(buddylib.KindActivity), string(buddylib.KindGroupSession):
	default:
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "unknown kind: " + p.Kind}
	}
	events := rs.core.UpcomingEvents()
	if p.Kind != "" {
		filtered := make([]buddylib.Event, 0, len(events))
		for _, ev := range events {
			if string(ev.Kind) == p.Kind {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}
	return &EventsResult{Events: events}, nil
}

func (rs *RPCServer) journalHistory(_ context.Context, p *common.HistoryParams) (*HistoryResult, error) {
	if rs.history == nil {
		return nil, &jrpc2.Error{Code: codeJournalError, Message: "journal disabled"}
	}
	entries, err := rs.history.History(p.Limit)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeJournalError, Message: err.Error()}
	}
	return &HistoryResult{Entries: entries}, nil
}

// Close shuts down the jrpc2 bridge, releasing internal goroutines.
func (rs *RPCServer) Close() {
	rs.bridge.Close()
}
