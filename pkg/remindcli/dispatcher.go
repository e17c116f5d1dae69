package remindcli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/studybuddy/remindd/common"
)

// ErrDisconnect signals a handler wants the Listen loop to stop cleanly.
var ErrDisconnect = errors.New("disconnect")

// Dispatcher routes server-pushed updates to registered handlers.
type Dispatcher struct {
	Handlers map[common.UpdateType]Handler
}

// Register installs a handler for an update type, replacing any
// previous one.
func (d *Dispatcher) Register(utype common.UpdateType, h Handler) {
	d.Handlers[utype] = h
}

func (d *Dispatcher) process(b []byte) error {
	var resp Response
	if err := json.Unmarshal(b, &resp); err != nil {
		return err
	}
	if !resp.Ok {
		return fmt.Errorf("daemon error: %s", resp.Error)
	}
	if resp.Update == nil {
		return nil
	}
	h, ok := d.Handlers[resp.Update.Type]
	if !ok {
		debugLog("no handler for update type %q", resp.Update.Type)
		return nil
	}
	return h.Handle(resp.Update.Message)
}
