package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dasdy/holdlight/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsAttrs(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(logging.ContextHandler{Handler: slog.NewTextHandler(&buf, nil)})

	ctx := logging.PackageCtx("wall")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), "package=wall")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestAppendCtxDoesNotLeakBetweenSiblings(t *testing.T) {
	parent := logging.AppendCtx(context.Background(), slog.String("a", "1"))
	parent = logging.AppendCtx(parent, slog.String("b", "2"))

	left := logging.AppendCtx(parent, slog.String(logging.RequestID, "left"))
	right := logging.AppendCtx(parent, slog.String(logging.RequestID, "right"))

	assert.Equal(t, "left", logging.RequestIDFromCtx(left))
	assert.Equal(t, "right", logging.RequestIDFromCtx(right))
	assert.Empty(t, logging.RequestIDFromCtx(parent))
}

func TestMiddleware(t *testing.T) {
	var seen string

	handler := logging.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates an id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(logging.RequestIDHeader))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	})

	t.Run("keeps the caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(logging.RequestIDHeader, "abc")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", rr.Header().Get(logging.RequestIDHeader))
	})
}
