package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"StockPulse/internal/usecase"
	applogger "StockPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Hub pushes the market overview to connected WebSocket clients on a fixed
// interval. Clients are read-only; a client that cannot keep up is dropped
// on the first failed write.
type Hub struct {
	overview *usecase.MarketOverview
	l        *applogger.Logger
	interval time.Duration
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub(overview *usecase.MarketOverview, l *applogger.Logger, interval time.Duration) *Hub {
	return &Hub{
		overview: overview,
		l:        l,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/overview", h.Serve)
}

// Serve upgrades the connection and holds it open until the client leaves.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.add(conn)
	h.l.Info("ws client connected", applogger.String("remote", conn.RemoteAddr().String()))

	// Push the current overview immediately so a new client does not wait
	// a full broadcast interval for its first frame.
	if overview, err := h.overview.FetchOverview(c.Request().Context(), true); err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(overview); err != nil {
			h.drop(conn)
			return nil
		}
	}

	// Discard inbound frames; reads only exist to detect disconnects.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

// Run broadcasts the overview every interval until ctx is done. Fetch
// failures skip the tick; connected clients keep their previous frame.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			if h.count() == 0 {
				continue
			}
			overview, err := h.overview.FetchOverview(ctx, true)
			if err != nil {
				h.l.Warn("ws broadcast fetch failed", applogger.Error(err))
				continue
			}
			h.broadcast(overview)
		}
	}
}

func (h *Hub) broadcast(v interface{}) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteJSON(v); err != nil {
			h.l.Debug("ws client dropped", applogger.Error(err))
			h.drop(c)
		}
	}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
}

func (h *Hub) drop(c *websocket.Conn) {
	h.mu.Lock()
	if h.conns[c] {
		delete(h.conns, c)
		c.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		c.Close()
	}
	h.conns = make(map[*websocket.Conn]bool)
}
