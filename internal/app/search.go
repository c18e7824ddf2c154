package app

import (
	"strings"

	"github.com/glabrego/feedr/internal/feed"
)

// Search returns every item whose feed title, own title or description
// contains query, case-insensitively. A feed whose title matches
// contributes all of its items.
func Search(feeds []feed.Feed, query string) []ItemRef {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}
	var out []ItemRef
	for fi, f := range feeds {
		if strings.Contains(strings.ToLower(f.Title), query) {
			for ii := range f.Items {
				out = append(out, ItemRef{Feed: fi, Item: ii})
			}
			continue
		}
		for ii, item := range f.Items {
			if strings.Contains(strings.ToLower(item.Title), query) ||
				strings.Contains(strings.ToLower(item.Description), query) {
				out = append(out, ItemRef{Feed: fi, Item: ii})
			}
		}
	}
	return out
}

// SetSearch runs query against all loaded feeds. An empty query ends the
// search instead of producing an empty result.
func (s *Service) SetSearch(query string) {
	s.searchQuery = strings.ToLower(query)
	s.searching = s.searchQuery != ""
	if !s.searching {
		s.searchResults = nil
		return
	}
	s.searchResults = Search(s.feeds, s.searchQuery)
}

func (s *Service) ClearSearch() { s.SetSearch("") }

func (s *Service) Searching() bool { return s.searching }

func (s *Service) SearchQuery() string { return s.searchQuery }

func (s *Service) SearchResults() []ItemRef { return s.searchResults }
