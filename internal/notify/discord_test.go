package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDiscordNotifier(t *testing.T) {
	t.Run("posts message as webhook content", func(t *testing.T) {
		var received map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &received))
			w.WriteHeader(http.StatusNoContent)
		}))
		t.Cleanup(srv.Close)

		n, err := NewDiscordNotifier(testLogger(), srv.URL)
		require.NoError(t, err)
		require.NoError(t, n.SendAlert(context.Background(), "spread alert"))
		assert.Equal(t, "spread alert", received["content"])
	})

	t.Run("non-2xx is a notification error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid webhook token", http.StatusUnauthorized)
		}))
		t.Cleanup(srv.Close)

		n, err := NewDiscordNotifier(testLogger(), srv.URL)
		require.NoError(t, err)

		err = n.SendAlert(context.Background(), "spread alert")
		var ne *NotificationError
		require.True(t, errors.As(err, &ne))
		assert.Equal(t, "discord", ne.Channel)
		assert.Contains(t, ne.Error(), "401")
	})

	t.Run("missing webhook URL is a startup error", func(t *testing.T) {
		_, err := NewDiscordNotifier(testLogger(), "")
		assert.Error(t, err)
	})
}
