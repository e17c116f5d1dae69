// Package remindcli is the client library for the remindd daemon. It speaks
// the length-prefixed JSON protocol over the daemon's unix socket (or named
// pipe on Windows, or TCP when forced) and spawns the daemon on demand.
package remindcli

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/studybuddy/remindd/common"
)

type Client struct {
	mu   *sync.RWMutex
	d    *Dispatcher
	conn net.Conn
}

// NewClient connects to the daemon, starting it first if it is not
// already running.
func NewClient() (*Client, error) {
	if err := ensureDaemon(); err != nil {
		return nil, fmt.Errorf("failed to start daemon: %w", err)
	}
	conn, err := dial()
	if err != nil {
		return nil, err
	}
	return &Client{
		mu: &sync.RWMutex{},
		d: &Dispatcher{
			Handlers: make(map[common.UpdateType]Handler),
		},
		conn: conn,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Dispatcher exposes the update dispatcher so callers can register
// handlers before starting Listen.
func (c *Client) Dispatcher() *Dispatcher {
	return c.d
}

// Listen reads server-pushed updates until the connection closes or a
// handler returns ErrDisconnect.
func (c *Client) Listen() error {
	for {
		c.mu.RLock()
		b, err := read(c.conn)
		c.mu.RUnlock()
		if err != nil {
			return err
		}
		if err = c.d.process(b); err != nil {
			if err == ErrDisconnect {
				return nil
			}
			return err
		}
	}
}

// call performs one request-response exchange on the connection.
func (c *Client) call(method common.UpdateType, message any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(&Request{
		Method:  method,
		Message: message,
	})
	if err != nil {
		return nil, err
	}
	if err = write(c.conn, b); err != nil {
		return nil, err
	}
	rb, err := read(c.conn)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err = json.Unmarshal(rb, &resp); err != nil {
		return nil, err
	}
	if !resp.Ok {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	if resp.Update == nil {
		return nil, fmt.Errorf("daemon returned no payload for %s", method)
	}
	return resp.Update.Message, nil
}
