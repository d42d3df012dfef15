package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/dasdy/holdlight/events"
	"github.com/dasdy/holdlight/logging"
	"github.com/dasdy/holdlight/metrics"
	"github.com/dasdy/holdlight/web/routes"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	Wall    routes.WallService
	Bus     *events.Bus
	Version string
}

func BuildServer(opts Options) http.Handler {
	mux := http.NewServeMux()

	config := huma.DefaultConfig("holdlight", opts.Version)
	config.Info.Description = "Light up climbing holds on an LED wall and keep named boulders"
	// Empty servers list makes OpenAPI use relative paths.
	config.Servers = []*huma.Server{}

	api := humago.New(mux, config)

	handler := &routes.ServerHandler{Wall: opts.Wall, Bus: opts.Bus}
	handler.Register(api)

	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /{$}", handler.IndexHandle)

	return logging.Middleware(mux)
}

// StartServer serves handler on addr until ctx is done. ready, when not nil,
// is called once the listener is bound.
func StartServer(ctx context.Context, addr string, handler http.Handler, ready func(addr net.Addr)) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	slog.Info("Running interface", "addr", listener.Addr().String())
	slog.Info("OpenAPI documentation available", "url", "http://"+listener.Addr().String()+"/docs")

	if ready != nil {
		ready(listener.Addr())
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("could not run server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not stop server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not run server: %w", err)
	}

	return nil
}
