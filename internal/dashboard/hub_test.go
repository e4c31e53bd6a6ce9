package dashboard

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentry/internal/model"
)

func TestHubBroadcastEvaluation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	hub := NewHub(logger)

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, time.Second, 5*time.Millisecond, "client never registered")

	result := model.ArbitrageResult{
		Pair:         "ETH/EUR",
		AmountBase:   1.0,
		BuyExchange:  "Bitfinex",
		SellExchange: "Kraken",
		BuyPrice:     3000.0,
		SellPrice:    3020.0,
		ProfitEUR:    19.99,
	}
	hub.BroadcastEvaluation(result, true)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var msg Evaluation
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "evaluation", msg.Type)
	assert.True(t, msg.Alert)
	assert.Equal(t, "ETH/EUR", msg.Result.Pair)
	assert.Equal(t, 3020.0, msg.Result.SellPrice)
	assert.NotZero(t, msg.Timestamp)
}

func TestHubEvictsDeadClients(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	hub := NewHub(logger)

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())

	// the write side notices the closed connection and drops the client
	require.Eventually(t, func() bool {
		hub.BroadcastEvaluation(model.ArbitrageResult{Pair: "ETH/EUR"}, false)
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 0
	}, time.Second, 10*time.Millisecond)
}
