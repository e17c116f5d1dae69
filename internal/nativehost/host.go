package nativehost

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/studybuddy/remindd/common"
)

// Client interface defines the daemon client methods used by the native host.
// This allows mocking for tests and decouples from the concrete remindcli.Client.
type Client interface {
	Status() (*common.StatusResponse, error)
	Events(kind string) (*common.EventsResponse, error)
	Refresh() (*common.RefreshResponse, error)
	History(limit int) (*common.HistoryResponse, error)
	GetDaemonVersion() (*common.VersionResponse, error)
	Close() error
}

// EventsRequestParams represents parameters for an events request.
type EventsRequestParams struct {
	Kind string `json:"kind,omitempty"`
}

// HistoryRequestParams represents parameters for a history request.
type HistoryRequestParams struct {
	Limit int `json:"limit,omitempty"`
}

// Host is the native messaging host that bridges browser extensions to the daemon.
type Host struct {
	client Client
	stdin  io.Reader
	stdout io.Writer
}

// NewHost creates a new native messaging host with the given client.
// Uses os.Stdin and os.Stdout for communication.
func NewHost(client Client) *Host {
	return &Host{
		client: client,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// Run starts the native messaging host main loop.
// It reads requests from stdin, processes them, and writes responses to stdout.
// Returns when stdin is closed (EOF) or an unrecoverable error occurs.
func (h *Host) Run() error {
	for {
		err := h.processOneMessage()
		if err == io.EOF {
			return nil // Browser closed connection
		}
		if err != nil {
			return err
		}
	}
}

// processOneMessage reads and processes a single message.
func (h *Host) processOneMessage() error {
	data, err := ReadMessage(h.stdin)
	if err != nil {
		return err
	}

	req, err := ParseRequest(data)
	if err != nil {
		// Send error response with ID 0 since we couldn't parse
		resp := MakeErrorResponse(0, fmt.Errorf("invalid request: %w", err))
		return WriteMessage(h.stdout, resp)
	}

	resp := h.handleRequest(req)
	return WriteMessage(h.stdout, resp)
}

// handleRequest processes a request and returns the JSON response.
func (h *Host) handleRequest(req *Request) []byte {
	var result any
	var err error

	switch req.Method {
	case "version":
		result, err = h.client.GetDaemonVersion()

	case "status":
		result, err = h.client.Status()

	case "events":
		var params EventsRequestParams
		if len(req.Message) > 0 {
			if err = json.Unmarshal(req.Message, &params); err != nil {
				return MakeErrorResponse(req.ID, fmt.Errorf("invalid events params: %w", err))
			}
		}
		switch params.Kind {
		case "", "activity", "group_session":
		default:
			return MakeErrorResponse(req.ID, errors.New("kind must be activity or group_session"))
		}
		result, err = h.client.Events(params.Kind)

	case "refresh":
		result, err = h.client.Refresh()

	case "history":
		var params HistoryRequestParams
		if len(req.Message) > 0 {
			if err = json.Unmarshal(req.Message, &params); err != nil {
				return MakeErrorResponse(req.ID, fmt.Errorf("invalid history params: %w", err))
			}
		}
		if params.Limit < 0 {
			return MakeErrorResponse(req.ID, errors.New("limit must not be negative"))
		}
		result, err = h.client.History(params.Limit)

	default:
		return MakeErrorResponse(req.ID, fmt.Errorf("unknown method: %s", req.Method))
	}

	if err != nil {
		return MakeErrorResponse(req.ID, err)
	}
	return MakeSuccessResponse(req.ID, result)
}
