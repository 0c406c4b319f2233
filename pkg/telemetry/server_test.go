package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBroadcastReachesClient(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	ts := httptest.NewServer(http.HandlerFunc(s.serveWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the server to register the client.
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if s.ClientCount() != 1 {
		t.Fatal("client never registered")
	}

	want := Sample{Era: "modern", RotationY: 1.25, Distance: 1.8}
	s.Broadcast(want)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Sample
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	if got != want {
		t.Errorf("sample = %+v, want %+v", got, want)
	}
}

func TestBroadcastDropsDeadClients(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	ts := httptest.NewServer(http.HandlerFunc(s.serveWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	conn.Close()

	// Writes to the closed connection eventually evict it.
	deadline = time.Now().Add(2 * time.Second)
	for s.ClientCount() > 0 && time.Now().Before(deadline) {
		s.Broadcast(Sample{Era: "modern"})
		time.Sleep(time.Millisecond)
	}
	if got := s.ClientCount(); got != 0 {
		t.Errorf("ClientCount = %d, want 0 after disconnect", got)
	}
}

func TestHomePage(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	rec := httptest.NewRecorder()
	s.serveHome(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/ws") {
		t.Error("home page does not mention the websocket endpoint")
	}
}
