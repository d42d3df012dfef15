package db

import (
	"context"
	"errors"
	"strings"

	"github.com/dasdy/holdlight/model"
)

var (
	ErrNotFound    = errors.New("boulder not found")
	ErrStorage     = errors.New("storage failure")
	ErrInvalidName = errors.New("invalid boulder name")
)

// Storage keeps named boulders. Implementations copy boulders on the way in
// and on the way out, so a caller never shares rows with the store.
type Storage interface {
	// Save inserts or overwrites a boulder and returns once it is durable.
	Save(ctx context.Context, name string, boulder model.Boulder) error
	Load(ctx context.Context, name string) (model.Boulder, error)
	Delete(ctx context.Context, name string) error
	// List returns every boulder sorted by name.
	List(ctx context.Context) ([]model.BoulderSummary, error)
	Close() error
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}

	return nil
}
