package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/pkg/logger"
)

// WebServer is the HTTP status surface: a health endpoint, a WebSocket
// notification stream for browser clients, and the authenticated JSON-RPC
// bridge.
type WebServer struct {
	addr     string
	log      logger.Logger
	rpc      *RPCServer
	notifier *RPCNotifier
	server   *http.Server
	mu       sync.Mutex

	smu     sync.Mutex
	streams map[*websocket.Conn]struct{}
}

// NewWebServer creates a WebServer bound to addr. rpc may be nil to disable
// the JSON-RPC endpoints.
func NewWebServer(l logger.Logger, rpc *RPCServer, addr string) *WebServer {
	return &WebServer{
		addr:     addr,
		log:      l,
		rpc:      rpc,
		notifier: NewRPCNotifier(l),
		streams:  make(map[*websocket.Conn]struct{}),
	}
}

// Notify pushes a toast to every connected stream: raw JSON to browser
// WebSocket clients, a reminder.notification call to jrpc2 channels.
func (s *WebServer) Notify(note common.Notification) {
	data, err := json.Marshal(note)
	if err != nil {
		return
	}

	s.smu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.streams))
	for conn := range s.streams {
		conns = append(conns, conn)
	}
	s.smu.Unlock()

	for _, conn := range conns {
		if err := websocket.Message.Send(conn, string(data)); err != nil {
			s.log.Warning("web: dropping notification stream: %v", err)
			s.smu.Lock()
			delete(s.streams, conn)
			s.smu.Unlock()
			conn.Close()
		}
	}

	s.notifier.Broadcast(note)
}

// handleStream keeps a browser WebSocket subscribed to notifications until
// the peer goes away.
func (s *WebServer) handleStream(conn *websocket.Conn) {
	s.smu.Lock()
	s.streams[conn] = struct{}{}
	s.smu.Unlock()

	defer func() {
		s.smu.Lock()
		delete(s.streams, conn)
		s.smu.Unlock()
		conn.Close()
	}()

	// Drain client frames; the stream is push-only.
	for {
		var discard string
		if err := websocket.Message.Receive(conn, &discard); err != nil {
			return
		}
	}
}

func (s *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *WebServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/notifications", websocket.Handler(s.handleStream))
	if s.rpc != nil {
		mux.Handle("/rpc", s.rpc.Handler())
		mux.Handle("/rpc/ws", s.rpc.WSHandler(s.notifier))
	}
	return mux
}

// Start runs the HTTP server and blocks until shutdown.
func (s *WebServer) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.handler(),
	}
	s.mu.Unlock()

	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the web server.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rpc != nil {
		s.rpc.Close()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
