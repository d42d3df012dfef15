package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Open picks a backend from the store location:
//
//	redis://host:port/db      redis hashes
//	sqlite://path, *.db,
//	*.sqlite, :memory:        sqlite table
//	*.yml, *.toml, *.json     a single file
func Open(ctx context.Context, uri string) (Storage, error) {
	switch {
	case strings.HasPrefix(uri, "redis://"), strings.HasPrefix(uri, "rediss://"):
		return ConnectRedis(ctx, uri)
	case strings.HasPrefix(uri, "sqlite://"):
		return ConnectDB(ctx, strings.TrimPrefix(uri, "sqlite://"))
	case uri == ":memory:":
		return ConnectDB(ctx, uri)
	}

	switch strings.ToLower(filepath.Ext(uri)) {
	case ".db", ".sqlite", ".sqlite3":
		return ConnectDB(ctx, uri)
	}

	if IsFilePath(uri) {
		return NewFileStorage(uri)
	}

	return nil, fmt.Errorf("cannot pick a store for %q: expected redis://, sqlite:// or a .yml/.toml/.json/.db path", uri)
}
