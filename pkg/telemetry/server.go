// Package telemetry exposes the live view state over a WebSocket so
// external tools can follow the globe's orientation in real time.
package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"fortio.org/log"
	"github.com/gorilla/websocket"
)

// Sample is one view-state snapshot, broadcast once per frame.
type Sample struct {
	Era       string  `json:"era"`
	RotationX float64 `json:"rotationX"`
	RotationY float64 `json:"rotationY"`
	MomentumX float64 `json:"momentumX"`
	MomentumY float64 `json:"momentumY"`
	Distance  float64 `json:"distance"`
	Dragging  bool    `json:"dragging"`
}

// Server broadcasts Samples to all connected WebSocket clients. The
// zero value is not usable; use NewServer.
type Server struct {
	httpServer *http.Server
	upgrader   websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewServer creates a telemetry server bound to addr (host:port).
func NewServer(addr string) *Server {
	s := &Server{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// Telemetry is a local diagnostic surface; accept any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.serveWS)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins serving in the background. Listen errors after startup
// are logged, not returned: telemetry failures never take down the
// viewer.
func (s *Server) Start() {
	log.Infof("telemetry listening on http://%s (ws at /ws)", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errf("telemetry server: %v", err)
		}
	}()
}

// Close shuts the server down and disconnects all clients.
func (s *Server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.httpServer.Shutdown(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
}

// Broadcast sends a sample to every connected client, dropping clients
// whose writes fail.
func (s *Server) Broadcast(sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clients) == 0 {
		return
	}

	data, err := json.Marshal(sample)
	if err != nil {
		log.Errf("telemetry marshal: %v", err)
		return
	}
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errf("telemetry upgrade: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	log.Infof("telemetry client connected: %s", conn.RemoteAddr())

	// Reader loop only detects disconnects; clients send nothing.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				delete(s.clients, conn)
				s.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

func (s *Server) serveHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>globe telemetry</title></head>
<body>
<h1>globe telemetry</h1>
<p>Connect a WebSocket client to <code>/ws</code> to receive one
orientation sample per rendered frame as JSON.</p>
<pre id="out">waiting for samples...</pre>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = e => document.getElementById("out").textContent =
  JSON.stringify(JSON.parse(e.data), null, 2);
</script>
</body>
</html>`))
}
