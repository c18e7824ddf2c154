package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glabrego/feedr/internal/feed"
)

const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Store persists bookmarks, categories and read item keys.
type Store interface {
	LoadBookmarks(ctx context.Context) ([]string, error)
	SaveBookmarks(ctx context.Context, urls []string) error
	LoadCategories(ctx context.Context) ([]feed.Category, error)
	SaveCategories(ctx context.Context, categories []feed.Category) error
	LoadReadItems(ctx context.Context) ([]string, error)
	SaveReadItems(ctx context.Context, keys []string) error
	Close() error
}

// Open returns the store of the given kind rooted at dir.
func Open(ctx context.Context, kind, dir string) (Store, error) {
	switch kind {
	case "", KindJSON:
		return NewFileStore(dir), nil
	case KindSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		s, err := NewSQLiteStore(filepath.Join(dir, "feedr.db"))
		if err != nil {
			return nil, err
		}
		if err := s.Init(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}
