package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/dasdy/holdlight/events"
)

func (s *ServerHandler) registerEventRoutes(api huma.API) {
	sse.Register(api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Grid, boulder list and brightness changes made by any client",
		Tags:        []string{"events"},
	}, map[string]any{
		"grid":         events.GridChangedEvent{},
		"boulders":     events.BouldersChangedEvent{},
		"brightness":   events.BrightnessChangedEvent{},
		"driver-error": events.DriverErrorEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 16)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.GridChangedEvent](s.Bus, eventCh),
			events.SubscribeToChannel[events.BouldersChangedEvent](s.Bus, eventCh),
			events.SubscribeToChannel[events.BrightnessChangedEvent](s.Bus, eventCh),
			events.SubscribeToChannel[events.DriverErrorEvent](s.Bus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// A fresh client gets the current grid first.
		state := s.Wall.State()
		if err := send.Data(events.GridChangedEvent{
			Grid:       state.Grid,
			Cause:      "connected",
			Boulder:    state.Boulder,
			Difficulty: state.Difficulty,
			Timestamp:  time.Now().Format(time.RFC3339),
		}); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-eventCh:
				if err := send.Data(ev); err != nil {
					return
				}
			}
		}
	})
}
