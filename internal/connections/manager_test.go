package connections

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestManager(t *testing.T) {
	t.Run("basic add and remove connection", func(t *testing.T) {
		manager := NewManager(DefaultTimeouts)
		conn := &websocket.Conn{}

		manager.Add(conn)
		if !manager.Has(conn) {
			t.Error("Connection not found after adding")
		}

		manager.Remove(conn)
		if manager.Has(conn) {
			t.Error("Connection still exists after removal")
		}
	})

	t.Run("concurrent connection operations", func(t *testing.T) {
		manager := NewManager(DefaultTimeouts)
		concurrentOps := 100

		conns := make([]*websocket.Conn, concurrentOps)
		for i := range conns {
			conns[i] = &websocket.Conn{}
		}

		var wg sync.WaitGroup
		for _, conn := range conns {
			wg.Add(1)
			go func(conn *websocket.Conn) {
				defer wg.Done()
				manager.Add(conn)
			}(conn)
		}
		wg.Wait()

		if got := manager.Count(); got != concurrentOps {
			t.Errorf("Count() = %d, want %d", got, concurrentOps)
		}

		for _, conn := range conns {
			wg.Add(1)
			go func(conn *websocket.Conn) {
				defer wg.Done()
				manager.Remove(conn)
			}(conn)
		}
		wg.Wait()

		if got := manager.Count(); got != 0 {
			t.Errorf("Count() = %d, want 0", got)
		}
	})

	t.Run("timeouts are exposed", func(t *testing.T) {
		custom := TimeoutConfig{PongWait: time.Second, PingPeriod: 900 * time.Millisecond, WriteWait: time.Second}
		if got := NewManager(custom).Timeouts(); got != custom {
			t.Errorf("Timeouts() = %+v, want %+v", got, custom)
		}
	})
}

func TestCloseAll(t *testing.T) {
	manager := NewManager(DefaultTimeouts)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		manager.Add(conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer client.Close()

	deadline := time.Now().Add(2 * time.Second)
	for manager.Count() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("connection was never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	manager.CloseAll()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = client.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("ReadMessage() error = %v, want going-away close", err)
	}
	if manager.Count() != 0 {
		t.Errorf("Count() after CloseAll = %d, want 0", manager.Count())
	}
}
