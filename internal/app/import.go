package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/glabrego/feedr/internal/feed"
	"github.com/glabrego/feedr/internal/opml"
)

type ImportSummary struct {
	Feeds             int
	NewBookmarks      int
	CreatedCategories int
}

// ImportSubscriptions bookmarks every subscription and files it under a
// category named after its outermost folder, creating missing categories.
func (s *Service) ImportSubscriptions(ctx context.Context, subs []opml.Subscription) (ImportSummary, error) {
	var summary ImportSummary
	categoriesChanged := false
	for _, sub := range subs {
		if sub.URL == "" {
			continue
		}
		summary.Feeds++
		if !contains(s.bookmarks, sub.URL) {
			s.bookmarks = append(s.bookmarks, sub.URL)
			summary.NewBookmarks++
		}

		folder := sub.Folder()
		if folder == "" {
			continue
		}
		index, ok := s.FindCategory(folder)
		if !ok {
			s.categories = append(s.categories, feed.Category{
				ID:    uuid.NewString(),
				Name:  folder,
				Feeds: feed.NewFeedSet(),
			})
			index = len(s.categories) - 1
			summary.CreatedCategories++
		}
		if !s.categories[index].Contains(sub.URL) {
			s.categories[index].Feeds[sub.URL] = struct{}{}
			categoriesChanged = true
		}
	}

	var errs []error
	if summary.NewBookmarks > 0 {
		if err := s.saveBookmarks(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if categoriesChanged || summary.CreatedCategories > 0 {
		if err := s.saveCategories(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.logger.Info("subscriptions imported",
		"feeds", summary.Feeds,
		"new_bookmarks", summary.NewBookmarks,
		"created_categories", summary.CreatedCategories,
	)
	return summary, errors.Join(errs...)
}

// Subscriptions lists bookmarks for export, titled after the loaded feed
// when available and filed under their first category.
func (s *Service) Subscriptions() []opml.Subscription {
	titles := make(map[string]string, len(s.feeds))
	for _, f := range s.feeds {
		titles[f.URL] = f.Title
	}
	out := make([]opml.Subscription, 0, len(s.bookmarks))
	for _, url := range s.bookmarks {
		sub := opml.Subscription{URL: url, Title: titles[url]}
		if sub.Title == "" {
			sub.Title = Domain(url)
		}
		if i, ok := s.CategoryForFeed(url); ok {
			sub.Folders = []string{s.categories[i].Name}
		}
		out = append(out, sub)
	}
	return out
}

func (s ImportSummary) String() string {
	return fmt.Sprintf("imported %d feeds (%d new), created %d categories", s.Feeds, s.NewBookmarks, s.CreatedCategories)
}
