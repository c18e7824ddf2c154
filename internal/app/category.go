package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/glabrego/feedr/internal/feed"
)

var labelKeywords = []struct {
	label    string
	keywords []string
}{
	{"news", []string{"news", "nytimes", "cnn"}},
	{"tech", []string{"tech", "wired", "ycombinator"}},
	{"science", []string{"science", "nature", "scientific"}},
	{"finance", []string{"finance", "money", "business"}},
	{"sports", []string{"sport", "espn", "athletic"}},
}

// Domain strips the scheme, a leading "www." and everything from the first
// slash.
func Domain(url string) string {
	d := url
	if i := strings.Index(d, "://"); i >= 0 {
		d = d[i+3:]
	}
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexByte(d, '/'); i >= 0 {
		d = d[:i]
	}
	return d
}

// CategoryLabel guesses a topic label from a feed URL.
func CategoryLabel(url string) string {
	domain := Domain(url)
	for _, group := range labelKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(domain, kw) {
				return group.label
			}
		}
	}
	if i := strings.IndexByte(domain, '.'); i >= 0 {
		return domain[:i]
	}
	return domain
}

// AvailableCategories lists the distinct labels of feeds, sorted.
func AvailableCategories(feeds []feed.Feed) []string {
	seen := make(map[string]struct{}, len(feeds))
	out := make([]string, 0, len(feeds))
	for _, f := range feeds {
		label := CategoryLabel(f.URL)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

func (s *Service) AvailableCategories() []string {
	return AvailableCategories(s.feeds)
}

func (s *Service) Categories() []feed.Category { return s.categories }

// SelectedCategory returns the selected category index, if any.
func (s *Service) SelectedCategory() (int, bool) {
	if s.selectedCategory < 0 || s.selectedCategory >= len(s.categories) {
		return 0, false
	}
	return s.selectedCategory, true
}

func (s *Service) SelectCategory(index int) {
	if index < 0 || index >= len(s.categories) {
		s.selectedCategory = -1
		return
	}
	s.selectedCategory = index
}

// CreateCategory appends a new empty category and selects it.
func (s *Service) CreateCategory(ctx context.Context, name string) error {
	name, err := s.validateName(name, -1)
	if err != nil {
		return err
	}
	s.categories = append(s.categories, feed.Category{
		ID:    uuid.NewString(),
		Name:  name,
		Feeds: feed.NewFeedSet(),
	})
	s.selectedCategory = len(s.categories) - 1
	return s.saveCategories(ctx)
}

func (s *Service) RenameCategory(ctx context.Context, index int, name string) error {
	if index < 0 || index >= len(s.categories) {
		return ErrCategoryIndex
	}
	name, err := s.validateName(name, index)
	if err != nil {
		return err
	}
	s.categories[index].Name = name
	return s.saveCategories(ctx)
}

// DeleteCategory removes the category at index. A selection past the new
// end moves to the last category; it clears when none remain.
func (s *Service) DeleteCategory(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.categories) {
		return ErrCategoryIndex
	}
	s.categories = append(s.categories[:index:index], s.categories[index+1:]...)
	switch {
	case len(s.categories) == 0 || s.selectedCategory < 0:
		s.selectedCategory = -1
	case s.selectedCategory >= len(s.categories):
		s.selectedCategory = len(s.categories) - 1
	}
	return s.saveCategories(ctx)
}

func (s *Service) AssignFeed(ctx context.Context, url string, index int) error {
	if index < 0 || index >= len(s.categories) {
		return ErrCategoryIndex
	}
	if s.categories[index].Feeds == nil {
		s.categories[index].Feeds = feed.NewFeedSet()
	}
	s.categories[index].Feeds[url] = struct{}{}
	return s.saveCategories(ctx)
}

func (s *Service) RemoveFeedFromCategory(ctx context.Context, url string, index int) error {
	if index < 0 || index >= len(s.categories) {
		return ErrCategoryIndex
	}
	if !s.categories[index].Contains(url) {
		return ErrFeedNotInCategory
	}
	delete(s.categories[index].Feeds, url)
	return s.saveCategories(ctx)
}

func (s *Service) ToggleCategoryExpanded(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.categories) {
		return ErrCategoryIndex
	}
	s.categories[index].Expanded = !s.categories[index].Expanded
	return s.saveCategories(ctx)
}

// CategoryForFeed returns the first category containing url.
func (s *Service) CategoryForFeed(url string) (int, bool) {
	for i := range s.categories {
		if s.categories[i].Contains(url) {
			return i, true
		}
	}
	return 0, false
}

// FindCategory looks a category up by exact name.
func (s *Service) FindCategory(name string) (int, bool) {
	for i := range s.categories {
		if s.categories[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

func (s *Service) validateName(name string, except int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyCategoryName
	}
	for i := range s.categories {
		if i != except && s.categories[i].Name == name {
			return "", fmt.Errorf("%w: %q", ErrDuplicateCategoryName, name)
		}
	}
	return name, nil
}

func (s *Service) saveCategories(ctx context.Context) error {
	if err := s.repo.SaveCategories(ctx, s.categories); err != nil {
		s.logger.Error("save categories failed", "error", err)
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}
