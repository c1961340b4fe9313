// Package spectate streams round snapshots to read-only websocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// DefaultRate is the maximum number of broadcasts per second.
const DefaultRate = 15

// Message is the envelope sent to viewers.
type Message struct {
	Type string `json:"type"`
	Mode string `json:"mode,omitempty"`
	Data any    `json:"data"`
}

type client struct {
	ws   *websocket.Conn
	send chan []byte
}

// enqueue never blocks; a slow viewer just misses frames.
func (c *client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (c *client) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second)) //nolint:errcheck
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Hub fans snapshots out to every connected viewer.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	latest   []byte
	last     time.Time
	interval time.Duration
	now      func() time.Time
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHub creates a hub that broadcasts at most rate times per second.
func NewHub(rate int, logger *log.Logger) *Hub {
	if rate <= 0 {
		rate = DefaultRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients:  make(map[*client]struct{}),
		interval: time.Second / time.Duration(rate),
		now:      time.Now,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Publish broadcasts msg unless the previous broadcast was too recent. It
// returns whether the message was accepted. The latest accepted message is
// replayed to viewers as they connect.
func (h *Hub) Publish(msg Message) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if !h.last.IsZero() && now.Sub(h.last) < h.interval {
		return false
	}

	b, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn("spectate: marshal failed", "error", err)
		return false
	}
	h.last = now
	h.latest = b
	for c := range h.clients {
		c.enqueue(b)
	}
	return true
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler serves /ws and /healthz.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/healthz", h.serveHealth)
	return mux
}

func (h *Hub) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"status":     "ok",
		"spectators": h.Len(),
	})
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectate: upgrade failed", "error", err)
		return
	}

	c := &client{ws: ws, send: make(chan []byte, 16)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.enqueue(h.latest)
	}
	h.mu.Unlock()
	h.logger.Info("spectator connected", "remote", r.RemoteAddr, "viewers", h.Len())

	go c.writePump()
	go h.readPump(c, r.RemoteAddr)
}

// readPump discards viewer input and unregisters on disconnect.
func (h *Hub) readPump(c *client, remote string) {
	defer h.remove(c)
	c.ws.SetReadLimit(4096)
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			break
		}
	}
	h.logger.Info("spectator disconnected", "remote", remote)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.remove(c)
	}
}

// Server runs a Hub on its own HTTP listener.
type Server struct {
	hub  *Hub
	http *http.Server
	ln   net.Listener
}

// Listen binds addr and starts serving in the background.
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectate: listen %s: %w", addr, err)
	}
	s := &Server{
		hub:  hub,
		http: &http.Server{Handler: hub.Handler(), ReadHeaderTimeout: 5 * time.Second},
		ln:   ln,
	}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hub.logger.Error("spectate: server stopped", "error", err)
		}
	}()
	hub.logger.Info("spectator feed listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown closes viewers and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	return nil
}
