package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, h *hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.handleWS))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Wait for the server side to register the connection.
	deadline := time.Now().Add(2 * time.Second)
	for {
		h.mu.Lock()
		n := len(h.clients)
		h.mu.Unlock()
		if n == 1 {
			return conn
		}
		if time.Now().After(deadline) {
			t.Fatal("connection never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastSingleClient(t *testing.T) {
	h := newHub()
	conn := dialHub(t, h)

	h.broadcast(map[string]string{"kind": "clear"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), `"clear"`) {
		t.Errorf("unexpected payload: %s", data)
	}
}

// Broadcasts originate from concurrent handler goroutines (a clear or a
// config change can race an in-flight send's events), so writes to one
// connection must be serialized. Every frame must still arrive intact.
func TestBroadcastConcurrentWriters(t *testing.T) {
	h := newHub()
	conn := dialHub(t, h)

	const writers = 16
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				h.broadcast(map[string]any{"kind": "typing", "typing": true})
			}
		}()
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for received := 0; received < writers*perWriter; received++ {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed after %d frames: %v", received, err)
		}
		var ev map[string]any
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("corrupt frame %d: %v (%q)", received, err, data)
		}
		if ev["kind"] != "typing" {
			t.Fatalf("unexpected frame %d: %v", received, ev)
		}
	}
	wg.Wait()
}
