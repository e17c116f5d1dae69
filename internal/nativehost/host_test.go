package nativehost

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/pkg/buddylib"
)

// mockClient implements a mock remindcli.Client for testing
type mockClient struct {
	statusResponse  *common.StatusResponse
	eventsResponse  *common.EventsResponse
	refreshResponse *common.RefreshResponse
	historyResponse *common.HistoryResponse
	versionResponse *common.VersionResponse
	err             error

	eventsKind   string
	historyLimit int
}

func (m *mockClient) Status() (*common.StatusResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.statusResponse, nil
}

func (m *mockClient) Events(kind string) (*common.EventsResponse, error) {
	m.eventsKind = kind
	if m.err != nil {
		return nil, m.err
	}
	return m.eventsResponse, nil
}

func (m *mockClient) Refresh() (*common.RefreshResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.refreshResponse, nil
}

func (m *mockClient) History(limit int) (*common.HistoryResponse, error) {
	m.historyLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.historyResponse, nil
}

func (m *mockClient) GetDaemonVersion() (*common.VersionResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.versionResponse, nil
}

func (m *mockClient) Close() error {
	return nil
}

// TestHostHandleRequest verifies request handling
func TestHostHandleRequest(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		client  *mockClient
		wantOk  bool
	}{
		{
			name: "version request",
			request: Request{
				ID:     1,
				Method: "version",
			},
			client: &mockClient{
				versionResponse: &common.VersionResponse{
					Version: "1.0.0",
					Commit:  "abc123",
				},
			},
			wantOk: true,
		},
		{
			name: "status request",
			request: Request{
				ID:     2,
				Method: "status",
			},
			client: &mockClient{
				statusResponse: &common.StatusResponse{State: "running"},
			},
			wantOk: true,
		},
		{
			name: "events request",
			request: Request{
				ID:      3,
				Method:  "events",
				Message: json.RawMessage(`{"kind":"activity"}`),
			},
			client: &mockClient{
				eventsResponse: &common.EventsResponse{
					Events: []buddylib.Event{{ID: "a1", Kind: buddylib.KindActivity}},
				},
			},
			wantOk: true,
		},
		{
			name: "refresh request",
			request: Request{
				ID:     4,
				Method: "refresh",
			},
			client: &mockClient{
				refreshResponse: &common.RefreshResponse{Activities: 2, Sessions: 1},
			},
			wantOk: true,
		},
		{
			name: "history request",
			request: Request{
				ID:      5,
				Method:  "history",
				Message: json.RawMessage(`{"limit":10}`),
			},
			client: &mockClient{
				historyResponse: &common.HistoryResponse{},
			},
			wantOk: true,
		},
		{
			name: "unknown method",
			request: Request{
				ID:     6,
				Method: "invalid_method",
			},
			client: &mockClient{},
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &Host{client: tt.client}
			resp := host.handleRequest(&tt.request)

			var r Response
			if err := json.Unmarshal(resp, &r); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}

			if r.ID != tt.request.ID {
				t.Errorf("Response ID = %d, want %d", r.ID, tt.request.ID)
			}
			if r.Ok != tt.wantOk {
				t.Errorf("Response Ok = %v, want %v (error: %s)", r.Ok, tt.wantOk, r.Error)
			}
		})
	}
}

// TestHostProcessMessages verifies end-to-end message processing
func TestHostProcessMessages(t *testing.T) {
	client := &mockClient{
		versionResponse: &common.VersionResponse{
			Version: "1.0.0",
			Commit:  "abc123",
		},
	}

	req := Request{ID: 1, Method: "version"}
	reqJSON, _ := json.Marshal(req)

	var input bytes.Buffer
	if err := WriteMessage(&input, reqJSON); err != nil {
		t.Fatalf("Failed to write message: %v", err)
	}

	var output bytes.Buffer

	host := &Host{
		client: client,
		stdin:  &input,
		stdout: &output,
	}

	if err := host.processOneMessage(); err != nil {
		t.Fatalf("processOneMessage failed: %v", err)
	}

	respData, err := ReadMessage(&output)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if !resp.Ok {
		t.Errorf("Response not ok: %s", resp.Error)
	}
	if resp.ID != 1 {
		t.Errorf("Response ID = %d, want 1", resp.ID)
	}
}

// TestHostEOFHandling verifies graceful EOF handling
func TestHostEOFHandling(t *testing.T) {
	host := &Host{
		client: &mockClient{},
		stdin:  bytes.NewReader(nil), // Empty reader triggers EOF
		stdout: &bytes.Buffer{},
	}

	err := host.processOneMessage()
	if err != io.EOF {
		t.Errorf("Expected EOF, got: %v", err)
	}
}

// TestEventsKindFilter verifies the kind filter is forwarded to the client
func TestEventsKindFilter(t *testing.T) {
	client := &mockClient{eventsResponse: &common.EventsResponse{}}
	host := &Host{client: client}

	req := &Request{
		ID:      1,
		Method:  "events",
		Message: json.RawMessage(`{"kind":"group_session"}`),
	}
	resp := host.handleRequest(req)

	var r Response
	if err := json.Unmarshal(resp, &r); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !r.Ok {
		t.Errorf("Response not ok: %s", r.Error)
	}
	if client.eventsKind != "group_session" {
		t.Errorf("forwarded kind = %q, want group_session", client.eventsKind)
	}
}

// TestEventsInvalidKind verifies unknown kinds are rejected
func TestEventsInvalidKind(t *testing.T) {
	client := &mockClient{eventsResponse: &common.EventsResponse{}}
	host := &Host{client: client}

	req := &Request{
		ID:      1,
		Method:  "events",
		Message: json.RawMessage(`{"kind":"lecture"}`),
	}
	resp := host.handleRequest(req)

	var r Response
	if err := json.Unmarshal(resp, &r); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if r.Ok {
		t.Error("Response should not be ok for unknown kind")
	}
	if r.Error != "kind must be activity or group_session" {
		t.Errorf("Error = %q", r.Error)
	}
}

// TestEventsNoParams verifies events works without a message body
func TestEventsNoParams(t *testing.T) {
	client := &mockClient{eventsResponse: &common.EventsResponse{}}
	host := &Host{client: client}

	resp := host.handleRequest(&Request{ID: 1, Method: "events"})

	var r Response
	if err := json.Unmarshal(resp, &r); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !r.Ok {
		t.Errorf("Response not ok: %s", r.Error)
	}
	if client.eventsKind != "" {
		t.Errorf("forwarded kind = %q, want empty", client.eventsKind)
	}
}

// TestHistoryLimitForwarded verifies the limit is passed through
func TestHistoryLimitForwarded(t *testing.T) {
	client := &mockClient{historyResponse: &common.HistoryResponse{}}
	host := &Host{client: client}

	req := &Request{
		ID:      1,
		Method:  "history",
		Message: json.RawMessage(`{"limit":5}`),
	}
	resp := host.handleRequest(req)

	var r Response
	if err := json.Unmarshal(resp, &r); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !r.Ok {
		t.Errorf("Response not ok: %s", r.Error)
	}
	if client.historyLimit != 5 {
		t.Errorf("forwarded limit = %d, want 5", client.historyLimit)
	}
}

// TestHistoryNegativeLimit verifies negative limits are rejected
func TestHistoryNegativeLimit(t *testing.T) {
	client := &mockClient{historyResponse: &common.HistoryResponse{}}
	host := &Host{client: client}

	req := &Request{
		ID:      1,
		Method:  "history",
		Message: json.RawMessage(`{"limit":-1}`),
	}
	resp := host.handleRequest(req)

	var r Response
	if err := json.Unmarshal(resp, &r); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if r.Ok {
		t.Error("Response should not be ok for negative limit")
	}
}

// TestInvalidEventsParams verifies error handling for invalid events params
func TestInvalidEventsParams(t *testing.T) {
	client := &mockClient{}
	host := &Host{client: client}

	req := &Request{
		ID:      1,
		Method:  "events",
		Message: json.RawMessage(`{invalid`),
	}
	resp := host.handleRequest(req)

	var r Response
	if err := json.Unmarshal(resp, &r); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if r.Ok {
		t.Error("Response should not be ok for invalid params")
	}
}

// TestInvalidHistoryParams verifies error handling for invalid history params
func TestInvalidHistoryParams(t *testing.T) {
	client := &mockClient{}
	host := &Host{client: client}

	req := &Request{
		ID:      1,
		Method:  "history",
		Message: json.RawMessage(`{invalid`),
	}
	resp := host.handleRequest(req)

	var r Response
	if err := json.Unmarshal(resp, &r); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if r.Ok {
		t.Error("Response should not be ok for invalid params")
	}
}

// TestClientError verifies error propagation from client
func TestClientError(t *testing.T) {
	client := &mockClient{err: io.EOF}
	host := &Host{client: client}

	req := &Request{
		ID:     1,
		Method: "version",
	}
	resp := host.handleRequest(req)

	var r Response
	if err := json.Unmarshal(resp, &r); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if r.Ok {
		t.Error("Response should not be ok when client returns error")
	}
}

// TestHostRun verifies the Run method
func TestHostRun(t *testing.T) {
	client := &mockClient{
		versionResponse: &common.VersionResponse{Version: "1.0.0"},
	}

	req := Request{ID: 1, Method: "version"}
	reqJSON, _ := json.Marshal(req)
	var input bytes.Buffer
	if err := WriteMessage(&input, reqJSON); err != nil {
		t.Fatalf("Failed to write message: %v", err)
	}

	var output bytes.Buffer
	host := &Host{
		client: client,
		stdin:  &input,
		stdout: &output,
	}

	// Run should return nil when input is exhausted (EOF)
	if err := host.Run(); err != nil {
		t.Errorf("Run() returned error: %v", err)
	}
}

// TestNewHost verifies NewHost creates a host with os.Stdin/Stdout
func TestNewHost(t *testing.T) {
	host := NewHost(&mockClient{})
	if host == nil {
		t.Fatal("NewHost returned nil")
	}
	if host.client == nil {
		t.Error("Host client is nil")
	}
}

// TestMultipleMessages verifies processing multiple sequential messages
func TestMultipleMessages(t *testing.T) {
	client := &mockClient{
		versionResponse: &common.VersionResponse{Version: "1.0.0"},
		statusResponse:  &common.StatusResponse{State: "running"},
	}

	var input bytes.Buffer
	for i := 1; i <= 3; i++ {
		req := Request{ID: i, Method: "version"}
		reqJSON, _ := json.Marshal(req)
		if err := WriteMessage(&input, reqJSON); err != nil {
			t.Fatalf("Failed to write message %d: %v", i, err)
		}
	}

	var output bytes.Buffer
	host := &Host{
		client: client,
		stdin:  &input,
		stdout: &output,
	}

	for i := 1; i <= 3; i++ {
		if err := host.processOneMessage(); err != nil {
			t.Fatalf("processOneMessage %d failed: %v", i, err)
		}
	}

	for i := 1; i <= 3; i++ {
		respData, err := ReadMessage(&output)
		if err != nil {
			t.Fatalf("Failed to read response %d: %v", i, err)
		}

		var resp Response
		if err := json.Unmarshal(respData, &resp); err != nil {
			t.Fatalf("Failed to unmarshal response %d: %v", i, err)
		}
		if resp.ID != i {
			t.Errorf("Response %d ID = %d, want %d", i, resp.ID, i)
		}
	}
}
