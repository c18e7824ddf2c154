package app

import (
	"sort"
	"time"

	"github.com/glabrego/feedr/internal/feed"
)

const DashboardLimit = 100

type datedRef struct {
	ref   ItemRef
	at    time.Time
	dated bool
}

// BuildDashboard merges every item newest first. Dated items always come
// before undated ones; undated items keep load order.
func BuildDashboard(feeds []feed.Feed) []ItemRef {
	var all []datedRef
	for fi, f := range feeds {
		for ii, item := range f.Items {
			at, ok := feed.ParseDate(item.PubDate)
			all = append(all, datedRef{ref: ItemRef{Feed: fi, Item: ii}, at: at, dated: ok})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		switch {
		case a.dated && b.dated:
			return a.at.After(b.at)
		case a.dated != b.dated:
			return a.dated
		default:
			return false
		}
	})

	if len(all) > DashboardLimit {
		all = all[:DashboardLimit]
	}
	out := make([]ItemRef, len(all))
	for i, d := range all {
		out[i] = d.ref
	}
	return out
}

func (s *Service) Dashboard() []ItemRef { return s.dashboard }

func (s *Service) FilteredDashboard() []ItemRef { return s.filtered }

// Visible is the list the dashboard screen shows: search results while a
// search is active, otherwise the filtered dashboard.
func (s *Service) Visible() []ItemRef {
	if s.searching {
		return s.searchResults
	}
	return s.filtered
}
