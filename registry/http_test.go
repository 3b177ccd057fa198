package registry

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freeAddr reserves an ephemeral TCP port and returns its address, for
// handing to ServeIntrospection (which wants an address string, not a
// pre-bound listener).
func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

// TestRegistry_ServeIntrospection smoke-tests the optional /loggers
// endpoint (spec.md §11): registered names come back as JSON, and an
// unknown path 404s.
func TestRegistry_ServeIntrospection(t *testing.T) {
	r := New()
	l1, err := NewBuilder("svc-a").Build()
	require.NoError(t, err)
	defer l1.Shutdown()
	r.Add(l1)

	addr := freeAddr(t)
	stop, errc := r.ServeIntrospection(addr)
	defer stop()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/loggers")
		if err == nil {
			break
		}
		select {
		case srvErr := <-errc:
			t.Fatalf("introspection server failed to start: %v", srvErr)
		case <-time.After(10 * time.Millisecond):
		}
	}
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Loggers []string `json:"loggers"`
		Dropped uint64   `json:"dropped"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload.Loggers, "svc-a")

	resp404, err := http.Get("http://" + addr + "/unknown")
	require.NoError(t, err)
	defer resp404.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp404.StatusCode)
}
