package app

import "github.com/glabrego/feedr/internal/feed"

// ItemKey is the durable identity of an item: its link, or the feed URL and
// title joined by an underscore when the item has no link.
func ItemKey(feedURL string, item feed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	return feedURL + "_" + item.Title
}
