package feed

import (
	"encoding/json"
	"sort"
)

// Feed is one fetched source. URL is its only durable identity.
type Feed struct {
	URL   string
	Title string
	Items []Item
}

// Item is a single entry of a feed. Optional fields are empty when absent.
type Item struct {
	Title         string
	Link          string
	Description   string
	PubDate       string
	Author        string
	FormattedDate string
}

// Category is a user-defined named group of feed URLs.
type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Feeds    FeedSet `json:"feeds"`
	Expanded bool    `json:"expanded"`
}

func (c *Category) Contains(url string) bool {
	return c.Feeds.Contains(url)
}

// FeedSet is an unordered set of feed URLs. It serializes as a sorted list.
type FeedSet map[string]struct{}

func NewFeedSet(urls ...string) FeedSet {
	s := make(FeedSet, len(urls))
	for _, u := range urls {
		s[u] = struct{}{}
	}
	return s
}

func (s FeedSet) Contains(url string) bool {
	_, ok := s[url]
	return ok
}

func (s FeedSet) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s FeedSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

func (s FeedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *FeedSet) UnmarshalJSON(data []byte) error {
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return err
	}
	*s = NewFeedSet(urls...)
	return nil
}
