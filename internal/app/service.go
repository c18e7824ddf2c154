package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/glabrego/feedr/internal/feed"
)

// FeedSource loads one feed by URL.
type FeedSource interface {
	Fetch(ctx context.Context, url string) (feed.Feed, error)
}

// Repository persists the state that outlives a session.
type Repository interface {
	LoadBookmarks(ctx context.Context) ([]string, error)
	SaveBookmarks(ctx context.Context, urls []string) error
	LoadCategories(ctx context.Context) ([]feed.Category, error)
	SaveCategories(ctx context.Context, categories []feed.Category) error
	LoadReadItems(ctx context.Context) ([]string, error)
	SaveReadItems(ctx context.Context, keys []string) error
}

// ItemRef points at feeds[Feed].Items[Item]. It is only valid until the
// feed list changes and must never be persisted.
type ItemRef struct {
	Feed int
	Item int
}

// Service owns all reader state. It is not safe for concurrent use; the
// caller serializes every mutation.
type Service struct {
	source FeedSource
	repo   Repository
	logger *slog.Logger
	nowFn  func() time.Time

	feeds            []feed.Feed
	bookmarks        []string
	categories       []feed.Category
	selectedCategory int
	readItems        []string
	read             ReadSet

	filter    FilterOptions
	dashboard []ItemRef
	filtered  []ItemRef

	searchQuery   string
	searchResults []ItemRef
	searching     bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.nowFn = now
		}
	}
}

func NewService(source FeedSource, repo Repository, opts ...Option) *Service {
	s := &Service{
		source:           source,
		repo:             repo,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		nowFn:            time.Now,
		selectedCategory: -1,
		read:             ReadSet{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores bookmarks, categories and read items. Each collection that
// cannot be read starts out empty; the returned error only reports what was
// degraded.
func (s *Service) Load(ctx context.Context) error {
	var errs []error

	bookmarks, err := s.repo.LoadBookmarks(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("load bookmarks: %w", err))
		bookmarks = nil
	}
	s.bookmarks = dedupe(bookmarks)

	categories, err := s.repo.LoadCategories(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("load categories: %w", err))
		categories = nil
	}
	for i := range categories {
		if categories[i].Feeds == nil {
			categories[i].Feeds = feed.NewFeedSet()
		}
	}
	s.categories = categories
	s.selectedCategory = -1

	readItems, err := s.repo.LoadReadItems(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("load read items: %w", err))
		readItems = nil
	}
	s.readItems = s.readItems[:0]
	s.read = ReadSet{}
	for _, key := range readItems {
		if key == "" || s.read.Contains(key) {
			continue
		}
		s.read[key] = struct{}{}
		s.readItems = append(s.readItems, key)
	}

	err = errors.Join(errs...)
	if err != nil {
		s.logger.Warn("persisted state degraded to empty", "error", err)
	}
	return err
}

// FetchAll fetches urls one after another. Every successful feed is kept;
// when several fetches fail only the last failure is reported.
func FetchAll(ctx context.Context, source FeedSource, urls []string) ([]feed.Feed, error) {
	feeds := make([]feed.Feed, 0, len(urls))
	var lastErr error
	for _, url := range urls {
		f, err := source.Fetch(ctx, url)
		if err != nil {
			lastErr = fmt.Errorf("refresh feed %s: %w", url, err)
			continue
		}
		feeds = append(feeds, f)
	}
	return feeds, lastErr
}

// Refresh reloads every bookmark and merges the result.
func (s *Service) Refresh(ctx context.Context) error {
	urls := s.Bookmarks()
	feeds, err := FetchAll(ctx, s.source, urls)
	if err != nil {
		s.logger.Warn("refresh incomplete", "error", err)
	}
	s.MergeRefreshed(urls, feeds)
	return err
}

// MergeRefreshed applies the result of fetching urls, which may have been
// started before the bookmarks last changed. Fetched feeds replace their
// loaded copies in fetch order, refreshed feeds that failed are dropped,
// loaded feeds outside urls are kept after them, and anything no longer
// bookmarked is discarded.
func (s *Service) MergeRefreshed(urls []string, fetched []feed.Feed) {
	refreshed := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		refreshed[url] = struct{}{}
	}
	seen := make(map[string]struct{}, len(s.bookmarks))
	merged := make([]feed.Feed, 0, len(s.bookmarks))
	keep := func(f feed.Feed) {
		if _, dup := seen[f.URL]; dup || !contains(s.bookmarks, f.URL) {
			return
		}
		seen[f.URL] = struct{}{}
		merged = append(merged, f)
	}
	for _, f := range fetched {
		keep(f)
	}
	for _, f := range s.feeds {
		if _, ok := refreshed[f.URL]; !ok {
			keep(f)
		}
	}
	s.logger.Debug("refresh merged", "refreshed", len(urls), "fetched", len(fetched), "loaded", len(merged))
	s.feeds = merged
	s.recompute()
}

// ReplaceFeeds swaps the whole loaded collection.
func (s *Service) ReplaceFeeds(feeds []feed.Feed) {
	s.feeds = feeds
	s.recompute()
}

// AddFeed appends a fetched feed and bookmarks its URL.
func (s *Service) AddFeed(ctx context.Context, f feed.Feed) error {
	for _, existing := range s.feeds {
		if existing.URL == f.URL {
			return fmt.Errorf("%w: %s", ErrDuplicateFeed, f.URL)
		}
	}
	s.feeds = append(s.feeds, f)
	if !contains(s.bookmarks, f.URL) {
		s.bookmarks = append(s.bookmarks, f.URL)
	}
	s.recompute()
	return s.saveBookmarks(ctx)
}

// AddBookmark records url without fetching it.
func (s *Service) AddBookmark(ctx context.Context, url string) (bool, error) {
	if url == "" || contains(s.bookmarks, url) {
		return false, nil
	}
	s.bookmarks = append(s.bookmarks, url)
	return true, s.saveBookmarks(ctx)
}

// RemoveFeed drops the feed at index together with its bookmark and its
// membership in every category.
func (s *Service) RemoveFeed(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.feeds) {
		return ErrFeedIndex
	}
	url := s.feeds[index].URL
	s.feeds = append(s.feeds[:index:index], s.feeds[index+1:]...)
	s.bookmarks = remove(s.bookmarks, url)
	for i := range s.categories {
		delete(s.categories[i].Feeds, url)
	}
	s.recompute()

	if err := s.saveBookmarks(ctx); err != nil {
		return err
	}
	return s.saveCategories(ctx)
}

func (s *Service) Feeds() []feed.Feed { return s.feeds }

func (s *Service) Feed(index int) (feed.Feed, bool) {
	if index < 0 || index >= len(s.feeds) {
		return feed.Feed{}, false
	}
	return s.feeds[index], true
}

// Item resolves ref against the current feed list.
func (s *Service) Item(ref ItemRef) (feed.Feed, feed.Item, bool) {
	f, ok := s.Feed(ref.Feed)
	if !ok || ref.Item < 0 || ref.Item >= len(f.Items) {
		return feed.Feed{}, feed.Item{}, false
	}
	return f, f.Items[ref.Item], true
}

func (s *Service) Bookmarks() []string {
	return append([]string(nil), s.bookmarks...)
}

// Now exposes the service clock so views agree with the filters.
func (s *Service) Now() time.Time { return s.nowFn() }

func (s *Service) recompute() {
	s.dashboard = BuildDashboard(s.feeds)
	s.applyFilters()
	if s.searching {
		s.searchResults = Search(s.feeds, s.searchQuery)
	}
}

func (s *Service) saveBookmarks(ctx context.Context) error {
	if err := s.repo.SaveBookmarks(ctx, s.Bookmarks()); err != nil {
		s.logger.Error("save bookmarks failed", "error", err)
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

func remove(values []string, v string) []string {
	out := values[:0]
	for _, existing := range values {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
