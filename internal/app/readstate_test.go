package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glabrego/feedr/internal/feed"
)

func TestItemKey(t *testing.T) {
	url := "https://a.example/rss"
	require.Equal(t, "https://a.example/post", ItemKey(url, feed.Item{Title: "One", Link: "https://a.example/post"}))
	require.Equal(t,
		ItemKey(url, feed.Item{Title: "One", Link: "https://a.example/post"}),
		ItemKey("https://other/rss", feed.Item{Title: "Two", Link: "https://a.example/post"}),
	)
	require.Equal(t, "https://a.example/rss_One", ItemKey(url, feed.Item{Title: "One"}))
	require.Equal(t, ItemKey(url, feed.Item{Title: "One"}), ItemKey(url, feed.Item{Title: "One", Author: "x"}))
}

func TestMarkRead_Idempotent(t *testing.T) {
	repo := &fakeRepo{}
	f := feed.Feed{URL: "https://a.example/rss", Items: []feed.Item{{Title: "One"}, {Title: "Two", Link: "https://a.example/2"}}}
	s := newTestService(repo, f)

	require.False(t, s.IsRead(f, f.Items[0]))
	require.NoError(t, s.MarkRead(bg(), f, f.Items[0]))
	require.NoError(t, s.MarkRead(bg(), f, f.Items[0]))
	require.True(t, s.IsRead(f, f.Items[0]))
	require.False(t, s.IsRead(f, f.Items[1]))
	require.Equal(t, []string{"https://a.example/rss_One"}, s.ReadItems())
	require.Equal(t, []string{"https://a.example/rss_One"}, repo.readItems)
	require.Equal(t, 1, repo.readSaves)
}

func TestMarkRead_SurvivesRefreshByKey(t *testing.T) {
	repo := &fakeRepo{}
	before := feed.Feed{URL: "https://a.example/rss", Items: []feed.Item{{Title: "Old"}, {Title: "Post", Link: "https://a.example/p"}}}
	s := newTestService(repo, before)
	require.NoError(t, s.MarkRead(bg(), before, before.Items[1]))

	after := feed.Feed{URL: before.URL, Items: []feed.Item{{Title: "Post renamed", Link: "https://a.example/p"}, {Title: "Old"}}}
	s.ReplaceFeeds([]feed.Feed{after})
	require.True(t, s.IsRead(after, after.Items[0]))
	require.False(t, s.IsRead(after, after.Items[1]))
}

func TestMarkRead_PersistFailureKeepsMemory(t *testing.T) {
	repo := &fakeRepo{saveErr: errDisk}
	f := feed.Feed{URL: "https://a.example/rss", Items: []feed.Item{{Title: "One"}}}
	s := newTestService(repo, f)

	err := s.MarkRead(bg(), f, f.Items[0])
	require.ErrorIs(t, err, errDisk)
	require.True(t, s.IsRead(f, f.Items[0]))
}
