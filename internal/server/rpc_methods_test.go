package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/pkg/buddylib"
)

type fakeCore struct {
	status  common.StatusResponse
	refresh common.RefreshResponse
	events  []buddylib.Event
}

func (f *fakeCore) Status() common.StatusResponse { return f.status }
func (f *fakeCore) Refresh(ctx context.Context) (common.RefreshResponse, error) {
	return f.refresh, nil
}
func (f *fakeCore) UpcomingEvents() []buddylib.Event { return f.events }

type fakeHistory struct {
	entries []common.HistoryEntry
}

func (f *fakeHistory) History(limit int) ([]common.HistoryEntry, error) {
	if limit > 0 && limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

const testSecret = "test-secret"

func newTestRPC(t *testing.T, core Core, history HistorySource) *httptest.Server {
	t.Helper()
	rs := NewRPCServer(&RPCConfig{Secret: testSecret, Version: "v1.2.3"}, core, history)
	t.Cleanup(rs.Close)
	srv := httptest.NewServer(rs.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func rpcCall(t *testing.T, srv *httptest.Server, token, method string, params any) (json.RawMessage, *json.RawMessage) {
	t.Helper()
	body := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
	}
	if params != nil {
		body["params"] = params
	}
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, srv.URL, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp struct {
		Result json.RawMessage  `json:"result"`
		Error  *json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rpcResp.Result, rpcResp.Error
}

func TestRPCVersion(t *testing.T) {
	srv := newTestRPC(t, &fakeCore{}, nil)

	result, rpcErr := rpcCall(t, srv, testSecret, "system.getVersion", nil)
	if rpcErr != nil {
		t.Fatalf("rpc error: %s", *rpcErr)
	}
	var v common.VersionResponse
	if err := json.Unmarshal(result, &v); err != nil {
		t.Fatal(err)
	}
	if v.Version != "v1.2.3" {
		t.Fatalf("Version = %q", v.Version)
	}
}

func TestRPCStatusAndRefresh(t *testing.T) {
	core := &fakeCore{
		status:  common.StatusResponse{State: "active", ArmedTimers: 4},
		refresh: common.RefreshResponse{Activities: 2, ArmedTimers: 8},
	}
	srv := newTestRPC(t, core, nil)

	result, rpcErr := rpcCall(t, srv, testSecret, "scheduler.status", nil)
	if rpcErr != nil {
		t.Fatalf("rpc error: %s", *rpcErr)
	}
	var st common.StatusResponse
	if err := json.Unmarshal(result, &st); err != nil {
		t.Fatal(err)
	}
	if st.State != "active" || st.ArmedTimers != 4 {
		t.Fatalf("status = %+v", st)
	}

	result, rpcErr = rpcCall(t, srv, testSecret, "scheduler.refresh", nil)
	if rpcErr != nil {
		t.Fatalf("rpc error: %s", *rpcErr)
	}
	var rr common.RefreshResponse
	if err := json.Unmarshal(result, &rr); err != nil {
		t.Fatal(err)
	}
	if rr.ArmedTimers != 8 {
		t.Fatalf("refresh = %+v", rr)
	}
}

func TestRPCAgendaListFiltersKind(t *testing.T) {
	now := time.Now()
	core := &fakeCore{events: []buddylib.Event{
		{ID: "a1", Kind: buddylib.KindActivity, StartAt: now.Add(time.Hour)},
		{ID: "g1", Kind: buddylib.KindGroupSession, StartAt: now.Add(2 * time.Hour)},
	}}
	srv := newTestRPC(t, core, nil)

	result, rpcErr := rpcCall(t, srv, testSecret, "agenda.list", common.EventsParams{Kind: "activity"})
	if rpcErr != nil {
		t.Fatalf("rpc error: %s", *rpcErr)
	}
	var er EventsResult
	if err := json.Unmarshal(result, &er); err != nil {
		t.Fatal(err)
	}
	if len(er.Events) != 1 || er.Events[0].ID != "a1" {
		t.Fatalf("filtered events = %+v", er.Events)
	}

	if _, rpcErr := rpcCall(t, srv, testSecret, "agenda.list", common.EventsParams{Kind: "bogus"}); rpcErr == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestRPCHistory(t *testing.T) {
	history := &fakeHistory{entries: []common.HistoryEntry{
		{EventID: "a1", Ok: true},
		{EventID: "a2", Ok: false},
	}}
	srv := newTestRPC(t, &fakeCore{}, history)

	result, rpcErr := rpcCall(t, srv, testSecret, "journal.history", common.HistoryParams{Limit: 1})
	if rpcErr != nil {
		t.Fatalf("rpc error: %s", *rpcErr)
	}
	var hr HistoryResult
	if err := json.Unmarshal(result, &hr); err != nil {
		t.Fatal(err)
	}
	if len(hr.Entries) != 1 || hr.Entries[0].EventID != "a1" {
		t.Fatalf("entries = %+v", hr.Entries)
	}
}

func TestRPCHistoryDisabled(t *testing.T) {
	srv := newTestRPC(t, &fakeCore{}, nil)
	if _, rpcErr := rpcCall(t, srv, testSecret, "journal.history", common.HistoryParams{}); rpcErr == nil {
		t.Fatal("disabled journal served history")
	}
}

func TestRPCRejectsBadToken(t *testing.T) {
	rs := NewRPCServer(&RPCConfig{Secret: testSecret}, &fakeCore{}, nil)
	defer rs.Close()
	srv := httptest.NewServer(rs.Handler())
	defer srv.Close()

	for _, token := range []string{"", "wrong"} {
		data := []byte(`{"jsonrpc":"2.0","id":1,"method":"system.getVersion"}`)
		req, _ := http.NewRequest(http.MethodPost, srv.URL, bytes.NewReader(data))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("token %q: status %d, want 401", token, resp.StatusCode)
		}
	}
}

func TestValidToken(t *testing.T) {
	cases := []struct {
		secret string
		header string
		want   bool
	}{
		{"s3cret", "Bearer s3cret", true},
		{"s3cret", "Bearer wrong", false},
		{"s3cret", "s3cret", false},
		{"", "Bearer anything", false},
	}
	for _, c := range cases {
		if got := validToken(c.secret, c.header); got != c.want {
			t.Errorf("validToken(%q, %q) = %v, want %v", c.secret, c.header, got, c.want)
		}
	}
}
