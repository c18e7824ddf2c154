package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/glabrego/feedr/internal/feed"
)

func TestBuildDashboard_DatedBeforeUndatedNewestFirst(t *testing.T) {
	feeds := []feed.Feed{
		{URL: "https://a.example/rss", Items: []feed.Item{
			{Title: "undated-a"},
			{Title: "old", PubDate: rfc2822(testNow.Add(-48 * time.Hour))},
			{Title: "bad date", PubDate: "not a date"},
		}},
		{URL: "https://b.example/rss", Items: []feed.Item{
			{Title: "new", PubDate: testNow.Add(-time.Hour).Format(time.RFC3339)},
			{Title: "undated-b"},
		}},
	}

	got := BuildDashboard(feeds)
	require.Equal(t, []ItemRef{
		{Feed: 1, Item: 0},
		{Feed: 0, Item: 1},
		{Feed: 0, Item: 0},
		{Feed: 0, Item: 2},
		{Feed: 1, Item: 1},
	}, got)
}

func TestBuildDashboard_CapsAtLimit(t *testing.T) {
	var items []feed.Item
	for i := 0; i < 150; i++ {
		items = append(items, feed.Item{
			Title:   fmt.Sprintf("item %d", i),
			PubDate: rfc2822(testNow.Add(-time.Duration(i) * time.Minute)),
		})
	}
	items = append(items, feed.Item{Title: "undated"})

	got := BuildDashboard([]feed.Feed{{URL: "https://a.example/rss", Items: items}})
	require.Len(t, got, DashboardLimit)
	require.Equal(t, ItemRef{Feed: 0, Item: 0}, got[0])
	require.Equal(t, ItemRef{Feed: 0, Item: 99}, got[99])
}

func TestBuildDashboard_Empty(t *testing.T) {
	require.Empty(t, BuildDashboard(nil))
}

func TestService_DashboardRecomputedOnFeedChanges(t *testing.T) {
	repo := &fakeRepo{}
	a := feed.Feed{URL: "https://a.example/rss", Items: []feed.Item{{Title: "a1", PubDate: rfc2822(testNow.Add(-2 * time.Hour))}}}
	s := newTestService(repo, a)
	require.Len(t, s.Dashboard(), 1)

	b := feed.Feed{URL: "https://b.example/rss", Items: []feed.Item{{Title: "b1", PubDate: rfc2822(testNow.Add(-time.Hour))}}}
	require.NoError(t, s.AddFeed(bg(), b))
	require.Equal(t, []ItemRef{{Feed: 1, Item: 0}, {Feed: 0, Item: 0}}, s.Dashboard())
	require.Equal(t, s.Dashboard(), s.FilteredDashboard())

	require.NoError(t, s.RemoveFeed(bg(), 0))
	require.Equal(t, []ItemRef{{Feed: 0, Item: 0}}, s.Dashboard())
	_, item, ok := s.Item(s.Dashboard()[0])
	require.True(t, ok)
	require.Equal(t, "b1", item.Title)
}
