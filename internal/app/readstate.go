package app

import (
	"context"
	"fmt"

	"github.com/glabrego/feedr/internal/feed"
)

// ReadSet holds durable item keys of opened items.
type ReadSet map[string]struct{}

func (r ReadSet) Contains(key string) bool {
	_, ok := r[key]
	return ok
}

// MarkRead records item as read. Marking an item twice is a no-op.
func (s *Service) MarkRead(ctx context.Context, f feed.Feed, item feed.Item) error {
	key := ItemKey(f.URL, item)
	if key == "" || s.read.Contains(key) {
		return nil
	}
	s.read[key] = struct{}{}
	s.readItems = append(s.readItems, key)
	if s.filter.ReadStatus != nil {
		s.applyFilters()
	}
	if err := s.repo.SaveReadItems(ctx, append([]string(nil), s.readItems...)); err != nil {
		s.logger.Error("save read items failed", "error", err)
		return fmt.Errorf("save read items: %w", err)
	}
	return nil
}

func (s *Service) IsRead(f feed.Feed, item feed.Item) bool {
	return s.read.Contains(ItemKey(f.URL, item))
}

func (s *Service) ReadItems() []string {
	return append([]string(nil), s.readItems...)
}
