package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type BrightnessInput struct {
	Body struct {
		Brightness float64 `json:"brightness" example:"0.5" doc:"Global brightness in [0, 1]"`
	}
}

type BrightnessOutput struct {
	Body struct {
		Status     string  `json:"status" example:"ok"`
		Brightness float64 `json:"brightness" example:"0.5"`
	}
}

func (s *ServerHandler) registerBrightnessRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-brightness",
		Method:      http.MethodPost,
		Path:        "/brightness",
		Summary:     "Set the global LED brightness",
		Tags:        []string{"leds"},
		Errors:      []int{400, 500},
	}, func(ctx context.Context, input *BrightnessInput) (*BrightnessOutput, error) {
		if err := s.Wall.SetBrightness(ctx, input.Body.Brightness); err != nil {
			return nil, toHTTPError(ctx, err)
		}

		out := &BrightnessOutput{}
		out.Body.Status = "ok"
		out.Body.Brightness = input.Body.Brightness

		return out, nil
	})
}
