package remindcli

import (
	"encoding/json"

	"github.com/studybuddy/remindd/common"
)

// Handler consumes one server-pushed update payload.
type Handler interface {
	Handle(message json.RawMessage) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(message json.RawMessage) error

func (f HandlerFunc) Handle(message json.RawMessage) error {
	return f(message)
}

// NotificationHandler decodes reminder notifications and hands them to
// a callback.
type NotificationHandler struct {
	Callback func(common.Notification)
}

func (h *NotificationHandler) Handle(message json.RawMessage) error {
	var note common.Notification
	if err := json.Unmarshal(message, &note); err != nil {
		return err
	}
	if h.Callback != nil {
		h.Callback(note)
	}
	return nil
}
