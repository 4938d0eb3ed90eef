package connections

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TimeoutConfig holds the keepalive settings for socket chat connections
type TimeoutConfig struct {
	PongWait   time.Duration
	PingPeriod time.Duration
	WriteWait  time.Duration
}

// DefaultTimeouts provides sensible default timeout values
var DefaultTimeouts = TimeoutConfig{
	PongWait:   60 * time.Second,
	PingPeriod: 54 * time.Second, // (PongWait * 9) / 10
	WriteWait:  10 * time.Second,
}

// Manager tracks open socket chat connections so they can be closed on shutdown.
type Manager struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]struct{}
	timeouts    TimeoutConfig
}

func NewManager(timeouts TimeoutConfig) *Manager {
	return &Manager{
		connections: make(map[*websocket.Conn]struct{}),
		timeouts:    timeouts,
	}
}

func (m *Manager) Add(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connections[conn] = struct{}{}
}

func (m *Manager) Remove(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.connections, conn)
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

func (m *Manager) Has(conn *websocket.Conn) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[conn]
	return ok
}

func (m *Manager) Timeouts() TimeoutConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.timeouts
}

// CloseAll sends a going-away close frame to every connection and forgets them.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	conns := m.connections
	m.connections = make(map[*websocket.Conn]struct{})
	wait := m.timeouts.WriteWait
	m.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wait))
		_ = conn.Close()
	}
}
