package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dasdy/holdlight/wall"
)

type CellInput struct {
	Body struct {
		Row int `json:"row" example:"0" doc:"Hold row, 0 is the top row"`
		Col int `json:"col" example:"3" doc:"Hold column"`
	}
}

type CellOutput struct {
	Body struct {
		State int    `json:"state" example:"1" doc:"New state index"`
		Name  string `json:"name" example:"hand" doc:"New state name"`
	}
}

type GridOutput struct {
	Body struct {
		Grid [][]int `json:"grid" doc:"Hold state index per cell"`
	}
}

type StateOutput struct {
	Body wall.State
}

type LEDOutput struct {
	Body struct {
		Rows       int        `json:"rows" example:"12"`
		Cols       int        `json:"cols" example:"8"`
		Brightness float64    `json:"brightness" example:"1"`
		Pixels     [][]string `json:"pixels" doc:"Colour per LED as #rrggbb, before brightness"`
	}
}

func (s *ServerHandler) toggle(ctx context.Context, input *CellInput) (*CellOutput, error) {
	idx, name, err := s.Wall.Toggle(ctx, input.Body.Row, input.Body.Col)
	if err != nil {
		return nil, toHTTPError(ctx, err)
	}

	out := &CellOutput{}
	out.Body.State = idx
	out.Body.Name = name

	return out, nil
}

func (s *ServerHandler) registerHoldRoutes(api huma.API) {
	// set_hold is the older name of the same operation.
	for id, path := range map[string]string{"set-cell": "/set_cell", "set-hold": "/set_hold"} {
		huma.Register(api, huma.Operation{
			OperationID: id,
			Method:      http.MethodPost,
			Path:        path,
			Summary:     "Advance a hold to its next state",
			Tags:        []string{"holds"},
			Errors:      []int{400},
		}, s.toggle)
	}

	huma.Register(api, huma.Operation{
		OperationID: "clear-grid",
		Method:      http.MethodPost,
		Path:        "/clear",
		Summary:     "Turn every hold off",
		Tags:        []string{"holds"},
	}, func(ctx context.Context, _ *struct{}) (*GridOutput, error) {
		out := &GridOutput{}
		out.Body.Grid = s.Wall.Clear(ctx)

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/api/state",
		Summary:     "Get the live hold grid",
		Tags:        []string{"holds"},
	}, func(_ context.Context, _ *struct{}) (*StateOutput, error) {
		return &StateOutput{Body: s.Wall.State()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-leds",
		Method:      http.MethodGet,
		Path:        "/api/leds",
		Summary:     "Get the colours last sent to the LEDs",
		Tags:        []string{"leds"},
	}, func(_ context.Context, _ *struct{}) (*LEDOutput, error) {
		frame := s.Wall.Frame()

		out := &LEDOutput{}
		out.Body.Rows = frame.Rows()
		out.Body.Cols = frame.Cols()
		out.Body.Brightness = s.Wall.State().Brightness
		out.Body.Pixels = make([][]string, frame.Rows())

		for r := range frame.Rows() {
			out.Body.Pixels[r] = make([]string, frame.Cols())
			for c := range frame.Cols() {
				out.Body.Pixels[r][c] = frame.At(r, c).Hex()
			}
		}

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "show-rainbow",
		Method:      http.MethodPost,
		Path:        "/api/rainbow",
		Summary:     "Show the rainbow test pattern",
		Description: "The pattern stays until the next grid change or page load.",
		Tags:        []string{"leds"},
		Errors:      []int{500},
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		if err := s.Wall.Rainbow(ctx); err != nil {
			return nil, toHTTPError(ctx, err)
		}

		return &struct{}{}, nil
	})
}
