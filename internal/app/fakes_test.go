package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glabrego/feedr/internal/feed"
)

type fakeSource struct {
	feeds map[string]feed.Feed
	errs  map[string]error
	calls []string
}

func (f *fakeSource) Fetch(ctx context.Context, url string) (feed.Feed, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return feed.Feed{}, err
	}
	if got, ok := f.feeds[url]; ok {
		return got, nil
	}
	return feed.Feed{}, fmt.Errorf("no feed at %s", url)
}

type fakeRepo struct {
	bookmarks  []string
	categories []feed.Category
	readItems  []string

	loadErr error
	saveErr error

	bookmarkSaves int
	categorySaves int
	readSaves     int
}

func (r *fakeRepo) LoadBookmarks(ctx context.Context) ([]string, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return append([]string(nil), r.bookmarks...), nil
}

func (r *fakeRepo) SaveBookmarks(ctx context.Context, urls []string) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.bookmarkSaves++
	r.bookmarks = append([]string(nil), urls...)
	return nil
}

func (r *fakeRepo) LoadCategories(ctx context.Context) ([]feed.Category, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return cloneCategories(r.categories), nil
}

func (r *fakeRepo) SaveCategories(ctx context.Context, categories []feed.Category) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.categorySaves++
	r.categories = cloneCategories(categories)
	return nil
}

func (r *fakeRepo) LoadReadItems(ctx context.Context) ([]string, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return append([]string(nil), r.readItems...), nil
}

func (r *fakeRepo) SaveReadItems(ctx context.Context, keys []string) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.readSaves++
	r.readItems = append([]string(nil), keys...)
	return nil
}

func cloneCategories(in []feed.Category) []feed.Category {
	out := make([]feed.Category, len(in))
	for i, c := range in {
		c.Feeds = feed.NewFeedSet(c.Feeds.Sorted()...)
		out[i] = c
	}
	return out
}

var errDisk = errors.New("disk full")

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, feeds ...feed.Feed) *Service {
	source := &fakeSource{feeds: map[string]feed.Feed{}}
	for _, f := range feeds {
		source.feeds[f.URL] = f
	}
	s := NewService(source, repo, WithClock(func() time.Time { return testNow }))
	s.ReplaceFeeds(feeds)
	return s
}

func rfc2822(t time.Time) string {
	return t.Format(time.RFC1123Z)
}

func bg() context.Context { return context.Background() }
