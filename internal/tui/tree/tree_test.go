package tree

import (
	"testing"

	"github.com/glabrego/feedr/internal/feed"
)

func sampleFeeds() []feed.Feed {
	return []feed.Feed{
		{URL: "https://b.example/rss", Title: "Beta"},
		{URL: "https://a.example/rss", Title: "Alpha"},
		{URL: "https://c.example/rss", Title: ""},
		{URL: "https://d.example/rss", Title: "Delta"},
	}
}

func TestBuildRows_ExpandedAndCollapsed(t *testing.T) {
	categories := []feed.Category{
		{ID: "1", Name: "Tech", Feeds: feed.NewFeedSet("https://b.example/rss", "https://a.example/rss"), Expanded: true},
		{ID: "2", Name: "News", Feeds: feed.NewFeedSet("https://c.example/rss"), Expanded: false},
	}
	rows := BuildRows(categories, sampleFeeds())

	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d: %+v", len(rows), rows)
	}
	if want := (Row{Kind: RowCategory, Label: "Tech", Category: 0, Count: 2, Expanded: true}); rows[0] != want {
		t.Fatalf("unexpected first category row: %+v", rows[0])
	}
	if rows[1].Label != "Alpha" || rows[2].Label != "Beta" || rows[2].Category != 0 {
		t.Fatalf("expected members sorted under Tech, got %+v %+v", rows[1], rows[2])
	}
	if want := (Row{Kind: RowCategory, Label: "News", Category: 1, Count: 1}); rows[3] != want {
		t.Fatalf("unexpected collapsed category row: %+v", rows[3])
	}
	if rows[4].Kind != RowSection || rows[4].Label != UncategorizedLabel || rows[4].Count != 1 {
		t.Fatalf("unexpected uncategorized section: %+v", rows[4])
	}
	if rows[5].Kind != RowFeed || rows[5].Label != "Delta" || rows[5].Category != -1 {
		t.Fatalf("unexpected loose feed row: %+v", rows[5])
	}
}

func TestBuildRows_MemberNotLoadedUsesURL(t *testing.T) {
	categories := []feed.Category{
		{Name: "Later", Feeds: feed.NewFeedSet("https://gone.example/rss"), Expanded: true},
	}
	rows := BuildRows(categories, nil)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Label != "https://gone.example/rss" {
		t.Fatalf("expected url label, got %q", rows[1].Label)
	}
}

func TestFeedName_FallsBackToURL(t *testing.T) {
	feeds := sampleFeeds()
	cases := map[string]string{
		"https://a.example/rss": "Alpha",
		"https://c.example/rss": "https://c.example/rss",
		"https://x.example":     "https://x.example",
	}
	for url, want := range cases {
		if got := FeedName(feeds, url); got != want {
			t.Fatalf("FeedName(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestCategoryRow(t *testing.T) {
	categories := []feed.Category{
		{Name: "Tech", Feeds: feed.NewFeedSet("https://a.example/rss"), Expanded: true},
		{Name: "News", Feeds: feed.NewFeedSet()},
	}
	rows := BuildRows(categories, sampleFeeds())
	for index, want := range map[int]int{0: 0, 1: 2, 5: -1} {
		if got := CategoryRow(rows, index); got != want {
			t.Fatalf("CategoryRow(%d) = %d, want %d", index, got, want)
		}
	}
}
