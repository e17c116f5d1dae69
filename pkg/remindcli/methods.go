package remindcli

import (
	"encoding/json"

	"github.com/studybuddy/remindd/common"
)

func invoke[T any](c *Client, method common.UpdateType, message any) (*T, error) {
	raw, err := c.call(method, message)
	if err != nil {
		return nil, err
	}
	var v T
	if err = json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Status reports the scheduler's current state.
func (c *Client) Status() (*common.StatusResponse, error) {
	return invoke[common.StatusResponse](c, common.UPDATE_STATUS, nil)
}

// Events lists upcoming events, optionally filtered by kind
// ("activity" or "group_session").
func (c *Client) Events(kind string) (*common.EventsResponse, error) {
	return invoke[common.EventsResponse](c, common.UPDATE_EVENTS, &common.EventsParams{
		Kind: kind,
	})
}

// Refresh forces an immediate agenda reload and reschedule.
func (c *Client) Refresh() (*common.RefreshResponse, error) {
	return invoke[common.RefreshResponse](c, common.UPDATE_REFRESH, nil)
}

// History returns recorded dispatch attempts, newest first.
func (c *Client) History(limit int) (*common.HistoryResponse, error) {
	return invoke[common.HistoryResponse](c, common.UPDATE_HISTORY, &common.HistoryParams{
		Limit: limit,
	})
}

// Attach subscribes this connection to notification broadcasts. Call
// Listen afterwards to receive them.
func (c *Client) Attach() (*common.AttachResponse, error) {
	return invoke[common.AttachResponse](c, common.UPDATE_ATTACH, nil)
}

// StopDaemon asks the daemon to shut down.
func (c *Client) StopDaemon() (*common.StopDaemonResponse, error) {
	return invoke[common.StopDaemonResponse](c, common.UPDATE_STOP_DAEMON, nil)
}

// GetDaemonVersion reports the running daemon's build information.
func (c *Client) GetDaemonVersion() (*common.VersionResponse, error) {
	return invoke[common.VersionResponse](c, common.UPDATE_VERSION, nil)
}
