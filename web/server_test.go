package web_test

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dasdy/holdlight/compositor"
	"github.com/dasdy/holdlight/db"
	"github.com/dasdy/holdlight/events"
	"github.com/dasdy/holdlight/grid"
	"github.com/dasdy/holdlight/led"
	"github.com/dasdy/holdlight/logging"
	"github.com/dasdy/holdlight/model"
	"github.com/dasdy/holdlight/wall"
	"github.com/dasdy/holdlight/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()

	strip, err := led.NewStrip(led.NewMemory(), 100, led.Layout{Orientation: led.Vertical, Rows: 12, Cols: 8})
	require.NoError(t, err)

	storage, err := db.NewFileStorage(filepath.Join(t.TempDir(), "boulders.json"))
	require.NoError(t, err)

	bus := events.New()

	w, err := wall.New(wall.Options{
		Grid:       grid.New(12, 7, model.CompactStates),
		Compositor: compositor.NewDirect(12, 8, compositor.Transform{}),
		Strip:      strip,
		Storage:    storage,
		Bus:        bus,
	})
	require.NoError(t, err)

	t.Cleanup(func() { w.Close() })

	return web.BuildServer(web.Options{Wall: w, Bus: bus, Version: "test"})
}

func TestBuildServerRoutes(t *testing.T) {
	handler := newHandler(t)

	cases := []struct {
		path     string
		contains string
	}{
		{"/", `class="hold"`},
		{"/metrics", "holdlight_led_pushes_total"},
		{"/openapi.json", "/set_cell"},
		{"/api/state", `"rows":12`},
	}

	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, c.path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), c.contains)
			assert.NotEmpty(t, rr.Header().Get(logging.RequestIDHeader))
		})
	}
}

func TestEventStreamSendsCurrentGrid(t *testing.T) {
	ts := httptest.NewServer(newHandler(t))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	scanner := bufio.NewScanner(resp.Body)
	lines := make([]string, 0)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if strings.HasPrefix(scanner.Text(), "data:") {
			break
		}
	}

	require.NotEmpty(t, lines)
	assert.Contains(t, lines, "event: grid")
	assert.Contains(t, lines[len(lines)-1], `"cause":"connected"`)
}

func TestStartServerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	bound := make(chan net.Addr, 1)
	done := make(chan error, 1)
	handler := newHandler(t)

	go func() {
		done <- web.StartServer(ctx, "127.0.0.1:0", handler, func(addr net.Addr) { bound <- addr })
	}()

	var addr net.Addr
	select {
	case addr = <-bound:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/api/state", addr))
	require.NoError(t, err)

	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not stop")
	}
}
