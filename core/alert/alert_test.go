package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSinkNotify(t *testing.T) {
	t.Run("Delivers Structured Message", func(t *testing.T) {
		var received map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		sink := NewSink(Config{WebhookURL: srv.URL, Channel: "ops"}, zap.NewNop())
		sink.Notify(context.Background(), Message{
			Title:    "Cache projection failed",
			Priority: PriorityWarning,
			RayID:    "ray-1",
			Subject:  "product-42",
			Action:   "run `storefront cache rebuild`",
			Fields:   map[string]string{"error": "disk full"},
			Links:    []string{"https://ops.example/dashboards/cache"},
		})

		assert.Equal(t, "Cache projection failed", received["title"])
		assert.Equal(t, "warning", received["priority"])
		assert.Equal(t, "ray-1", received["ray_id"])
		assert.Equal(t, "product-42", received["subject"])
		assert.Equal(t, "ops", received["channel"])
	})

	t.Run("Swallows Delivery Failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		sink := NewSink(Config{WebhookURL: srv.URL}, zap.NewNop())
		// Must not panic or block; failures are logged and dropped.
		sink.Notify(context.Background(), Message{Title: "t", Priority: PriorityCritical})
	})

	t.Run("Unconfigured Sink Logs Only", func(t *testing.T) {
		sink := NewSink(Config{}, zap.NewNop())
		sink.Notify(context.Background(), Message{Title: "t", Priority: PriorityInfo})
	})
}
