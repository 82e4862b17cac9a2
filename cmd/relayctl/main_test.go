package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-relay-bot/internal/relay"
)

func newFakeBotServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/api/v1/stats", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(relay.Stats{
			Mappings:  3,
			Forwarded: 10,
			Replied:   4,
			Failures:  map[string]uint64{"unknown_target": 2, "delivery_failed": 1},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	srv := newFakeBotServer(t)

	t.Run("health", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-server", srv.URL, "health"}, &out))
		assert.Equal(t, "ok\n", out.String())
	})

	t.Run("stats as json when not a terminal", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-server", srv.URL + "/", "stats"}, &out))

		var stats relay.Stats
		require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
		assert.Equal(t, uint64(10), stats.Forwarded)
		assert.Equal(t, uint64(2), stats.Failures["unknown_target"])
	})

	t.Run("unknown command", func(t *testing.T) {
		err := run([]string{"-server", srv.URL, "purge"}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "unknown command")
	})

	t.Run("missing command", func(t *testing.T) {
		err := run([]string{"-server", srv.URL}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("server error status", func(t *testing.T) {
		err := run([]string{"-server", srv.URL + "/missing", "stats"}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "status 404")
	})
}

func TestRenderTable(t *testing.T) {
	t.Run("failures sorted by kind", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, renderTable(&out, relay.Stats{
			Mappings:  3,
			Forwarded: 10,
			Replied:   4,
			Failures:  map[string]uint64{"unknown_target": 2, "delivery_failed": 1},
		}))

		want := "--- Relay Stats ---\n" +
			"Mappings:   3\n" +
			"Forwarded:  10\n" +
			"Replied:    4\n" +
			"Failures:\n" +
			"  delivery_failed  1\n" +
			"  unknown_target   2\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("no failures", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, renderTable(&out, relay.Stats{}))
		assert.Contains(t, out.String(), "Failures:   none")
	})
}
