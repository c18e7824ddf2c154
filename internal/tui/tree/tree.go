package tree

import (
	"sort"
	"strings"

	"github.com/glabrego/feedr/internal/feed"
)

type RowKind string

const (
	RowSection  RowKind = "section"
	RowCategory RowKind = "category"
	RowFeed     RowKind = "feed"
)

// Row is one line of the category management tree. Category is the index of
// the owning category, or -1 for feeds outside every category.
type Row struct {
	Kind     RowKind
	Label    string
	Category int
	URL      string
	Count    int
	Expanded bool
}

const UncategorizedLabel = "Uncategorized"

// FeedName resolves a display name for url from the loaded feeds.
func FeedName(feeds []feed.Feed, url string) string {
	for _, f := range feeds {
		if f.URL == url {
			if name := strings.TrimSpace(f.Title); name != "" {
				return name
			}
			break
		}
	}
	return url
}

// BuildRows lists every category in order with its member feeds under
// expanded categories, then the loaded feeds that belong to no category.
func BuildRows(categories []feed.Category, feeds []feed.Feed) []Row {
	rows := make([]Row, 0, len(categories)+len(feeds)+1)
	member := make(map[string]struct{})
	for ci, c := range categories {
		rows = append(rows, Row{
			Kind:     RowCategory,
			Label:    c.Name,
			Category: ci,
			Count:    c.Feeds.Len(),
			Expanded: c.Expanded,
		})
		urls := c.Feeds.Sorted()
		for _, u := range urls {
			member[u] = struct{}{}
		}
		if !c.Expanded {
			continue
		}
		feedRows := make([]Row, 0, len(urls))
		for _, u := range urls {
			feedRows = append(feedRows, Row{
				Kind:     RowFeed,
				Label:    FeedName(feeds, u),
				Category: ci,
				URL:      u,
			})
		}
		sortByLabel(feedRows)
		rows = append(rows, feedRows...)
	}

	loose := make([]Row, 0, len(feeds))
	for _, f := range feeds {
		if _, ok := member[f.URL]; ok {
			continue
		}
		loose = append(loose, Row{
			Kind:     RowFeed,
			Label:    FeedName(feeds, f.URL),
			Category: -1,
			URL:      f.URL,
		})
	}
	if len(loose) > 0 {
		sortByLabel(loose)
		rows = append(rows, Row{Kind: RowSection, Label: UncategorizedLabel, Category: -1, Count: len(loose)})
		rows = append(rows, loose...)
	}
	return rows
}

// CategoryRow returns the row index of category index, or -1.
func CategoryRow(rows []Row, index int) int {
	for i, row := range rows {
		if row.Kind == RowCategory && row.Category == index {
			return i
		}
	}
	return -1
}

func sortByLabel(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		li := strings.ToLower(rows[i].Label)
		lj := strings.ToLower(rows[j].Label)
		if li != lj {
			return li < lj
		}
		return rows[i].URL < rows[j].URL
	})
}
