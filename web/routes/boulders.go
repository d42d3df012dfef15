package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dasdy/holdlight/model"
)

type SaveInput struct {
	Body struct {
		Name       string `json:"name" example:"V3" doc:"Boulder name, overwrites an existing one"`
		Difficulty string `json:"difficulty,omitempty" example:"6a"`
	}
}

type SaveOutput struct {
	Body struct {
		Status       string            `json:"status" example:"saved"`
		Boulders     []string          `json:"boulders" doc:"Every boulder name, sorted"`
		Difficulties map[string]string `json:"difficulties" doc:"Difficulty per boulder name"`
	}
}

type LoadInput struct {
	Body struct {
		Name string `json:"name" example:"V3"`
	}
}

type LoadOutput struct {
	Body struct {
		Grid       [][]int `json:"grid" doc:"Hold state index per cell"`
		Difficulty string  `json:"difficulty" example:"6a"`
	}
}

type BouldersOutput struct {
	Body struct {
		Boulders []model.BoulderSummary `json:"boulders"`
	}
}

type DeleteInput struct {
	Name string `path:"name" example:"V3"`
}

func (s *ServerHandler) registerBoulderRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "save-boulder",
		Method:      http.MethodPost,
		Path:        "/save",
		Summary:     "Save the live grid as a boulder",
		Tags:        []string{"boulders"},
		Errors:      []int{400, 500},
	}, func(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
		boulders, err := s.Wall.Save(ctx, input.Body.Name, input.Body.Difficulty)
		if err != nil {
			return nil, toHTTPError(ctx, err)
		}

		out := &SaveOutput{}
		out.Body.Status = "saved"
		out.Body.Boulders = make([]string, len(boulders))
		out.Body.Difficulties = make(map[string]string, len(boulders))

		for i, b := range boulders {
			out.Body.Boulders[i] = b.Name
			out.Body.Difficulties[b.Name] = b.Difficulty
		}

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "load-boulder",
		Method:      http.MethodPost,
		Path:        "/load",
		Summary:     "Replace the live grid with a saved boulder",
		Tags:        []string{"boulders"},
		Errors:      []int{404, 409, 500},
	}, func(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
		cells, difficulty, err := s.Wall.Load(ctx, input.Body.Name)
		if err != nil {
			return nil, toHTTPError(ctx, err)
		}

		out := &LoadOutput{}
		out.Body.Grid = cells
		out.Body.Difficulty = difficulty

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-boulders",
		Method:      http.MethodGet,
		Path:        "/api/boulders",
		Summary:     "List saved boulders",
		Tags:        []string{"boulders"},
		Errors:      []int{500},
	}, func(ctx context.Context, _ *struct{}) (*BouldersOutput, error) {
		boulders, err := s.Wall.Boulders(ctx)
		if err != nil {
			return nil, toHTTPError(ctx, err)
		}

		out := &BouldersOutput{}
		out.Body.Boulders = boulders

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-boulder",
		Method:      http.MethodDelete,
		Path:        "/api/boulders/{name}",
		Summary:     "Delete a saved boulder",
		Tags:        []string{"boulders"},
		Errors:      []int{404, 500},
	}, func(ctx context.Context, input *DeleteInput) (*BouldersOutput, error) {
		boulders, err := s.Wall.Delete(ctx, input.Name)
		if err != nil {
			return nil, toHTTPError(ctx, err)
		}

		out := &BouldersOutput{}
		out.Body.Boulders = boulders

		return out, nil
	})
}
