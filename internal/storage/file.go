package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glabrego/feedr/internal/feed"
)

const (
	bookmarksFile  = "bookmarks.json"
	categoriesFile = "categories.json"
	readItemsFile  = "read_items.json"
)

// FileStore keeps each collection in its own JSON file under dir. A missing
// file reads as an empty collection.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) LoadBookmarks(ctx context.Context) ([]string, error) {
	var urls []string
	if err := s.read(bookmarksFile, &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

func (s *FileStore) SaveBookmarks(ctx context.Context, urls []string) error {
	return s.write(bookmarksFile, nonNil(urls))
}

func (s *FileStore) LoadCategories(ctx context.Context) ([]feed.Category, error) {
	var categories []feed.Category
	if err := s.read(categoriesFile, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *FileStore) SaveCategories(ctx context.Context, categories []feed.Category) error {
	if categories == nil {
		categories = []feed.Category{}
	}
	return s.write(categoriesFile, categories)
}

func (s *FileStore) LoadReadItems(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.read(readItemsFile, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *FileStore) SaveReadItems(ctx context.Context, keys []string) error {
	return s.write(readItemsFile, nonNil(keys))
}

func (s *FileStore) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// write replaces name atomically through a temp file in the same directory.
func (s *FileStore) write(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
