package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/pkg/logger"
)

func startTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix socket test")
	}
	sock := filepath.Join(t.TempDir(), "remindd.sock")
	t.Setenv(common.SocketPathEnv, sock)

	s := NewServer(logger.NewNopLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = s.Start(ctx)
	}()

	// Wait for the socket to appear.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if conn, err := net.Dial("unix", sock); err == nil {
			conn.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("server never came up")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return s, sock
}

func roundTrip(t *testing.T, sock string, method common.UpdateType, msg any) *Response {
	t.Helper()
	conn, err := net.Dial("unix", sock)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	sconn := NewSyncConn(conn)

	body, _ := json.Marshal(msg)
	req, _ := json.Marshal(Request{Method: method, Message: body})
	if err := sconn.Write(req); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf, err := sconn.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(buf, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &resp
}

func TestServerDispatchesToHandler(t *testing.T) {
	s, sock := startTestServer(t)
	s.RegisterHandler(common.UPDATE_STATUS, func(conn *SyncConn, pool *Pool, body json.RawMessage) (common.UpdateType, any, error) {
		return common.UPDATE_STATUS, &common.StatusResponse{State: "active"}, nil
	})

	resp := roundTrip(t, sock, common.UPDATE_STATUS, nil)
	if !resp.Ok {
		t.Fatalf("response not ok: %s", resp.Error)
	}
	if resp.Update == nil || resp.Update.Type != common.UPDATE_STATUS {
		t.Fatalf("unexpected update: %+v", resp.Update)
	}
}

func TestServerUnknownMethod(t *testing.T) {
	_, sock := startTestServer(t)

	resp := roundTrip(t, sock, "bogus", nil)
	if resp.Ok {
		t.Fatal("unknown method reported ok")
	}
	if resp.Error == "" {
		t.Fatal("unknown method produced no error")
	}
}

func TestServerHandlerError(t *testing.T) {
	s, sock := startTestServer(t)
	s.RegisterHandler(common.UPDATE_REFRESH, func(conn *SyncConn, pool *Pool, body json.RawMessage) (common.UpdateType, any, error) {
		return "", nil, errors.New("scheduler halted")
	})

	resp := roundTrip(t, sock, common.UPDATE_REFRESH, nil)
	if resp.Ok {
		t.Fatal("handler error reported ok")
	}
	if resp.Error != "scheduler halted" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestServerShutdownRemovesSocket(t *testing.T) {
	s, sock := startTestServer(t)
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, err := net.Dial("unix", sock); err == nil {
		t.Fatal("socket still accepting after shutdown")
	}
}
