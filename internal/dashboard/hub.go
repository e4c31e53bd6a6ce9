package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sentry/internal/model"
)

// Evaluation is the message pushed to dashboard clients after every cycle.
type Evaluation struct {
	Type      string                `json:"type"`
	Result    model.ArbitrageResult `json:"result"`
	Alert     bool                  `json:"alert"`
	Timestamp int64                 `json:"timestamp"`
}

// Hub broadcasts cycle evaluations to connected websocket clients.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client goes away. Clients only listen; inbound messages are
// drained and discarded.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("dashboard client connected", "clients", total)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// BroadcastEvaluation pushes one cycle's result and alert decision to every
// connected client, evicting clients that fail to accept the write.
func (h *Hub) BroadcastEvaluation(result model.ArbitrageResult, alert bool) {
	msg := Evaluation{
		Type:      "evaluation",
		Result:    result,
		Alert:     alert,
		Timestamp: time.Now().UnixMilli(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warn("dropping dashboard client", "error", err)
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Serve runs an HTTP server exposing the websocket endpoint at /ws until the
// context is cancelled.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleWebSocket)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	h.logger.Info("dashboard listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
