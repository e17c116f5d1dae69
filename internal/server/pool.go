package server

import (
	"sync"

	"github.com/studybuddy/remindd/pkg/logger"
)

// Pool tracks clients that attached for live notifications. Broadcasts go to
// every attached connection; connections that fail to receive are dropped
// from the pool and closed.
type Pool struct {
	mu    sync.RWMutex
	conns map[*SyncConn]struct{}
	log   logger.Logger
}

func NewPool(l logger.Logger) *Pool {
	return &Pool{
		conns: make(map[*SyncConn]struct{}),
		log:   l,
	}
}

// Attach subscribes a connection to notification broadcasts.
func (p *Pool) Attach(conn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[conn] = struct{}{}
}

// Detach removes a connection from the broadcast set without closing it.
func (p *Pool) Detach(conn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.conns, conn)
}

// Attached returns the number of subscribed connections.
func (p *Pool) Attached() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.conns)
}

// Broadcast writes data to every attached connection. Write failures drop
// the connection from the pool.
func (p *Pool) Broadcast(data []byte) {
	p.mu.RLock()
	conns := make([]*SyncConn, 0, len(p.conns))
	for conn := range p.conns {
		conns = append(conns, conn)
	}
	p.mu.RUnlock()

	var failed []*SyncConn
	for _, conn := range conns {
		if err := conn.Write(data); err != nil {
			p.log.Warning("pool: dropping attached client: %v", err)
			failed = append(failed, conn)
		}
	}
	if len(failed) > 0 {
		p.mu.Lock()
		for _, conn := range failed {
			delete(p.conns, conn)
			_ = conn.Conn.Close()
		}
		p.mu.Unlock()
	}
}
