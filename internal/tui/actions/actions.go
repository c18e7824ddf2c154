package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/feedr/internal/app"
	"github.com/glabrego/feedr/internal/feed"
)

const DefaultFetchTimeout = 15 * time.Second

// RefreshMsg carries the feeds that fetched successfully out of URLs. Err
// is the last per-feed failure, if any.
type RefreshMsg struct {
	URLs     []string
	Feeds    []feed.Feed
	Err      error
	Duration time.Duration
}

type AddFeedSuccessMsg struct {
	Feed feed.Feed
}

type AddFeedErrorMsg struct {
	URL string
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

// RefreshCmd fetches every url in order. The deadline grows with the number
// of feeds so one slow source cannot starve the rest.
func RefreshCmd(source app.FeedSource, urls []string, perFeed time.Duration) tea.Cmd {
	urls = append([]string(nil), urls...)
	if perFeed <= 0 {
		perFeed = DefaultFetchTimeout
	}
	return func() tea.Msg {
		n := len(urls)
		if n == 0 {
			n = 1
		}
		ctx, cancel := context.WithTimeout(context.Background(), perFeed*time.Duration(n))
		defer cancel()
		start := time.Now()

		feeds, err := app.FetchAll(ctx, source, urls)
		return RefreshMsg{URLs: urls, Feeds: feeds, Err: err, Duration: time.Since(start)}
	}
}

func AddFeedCmd(source app.FeedSource, url string, timeout time.Duration) tea.Cmd {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		f, err := source.Fetch(ctx, url)
		if err != nil {
			return AddFeedErrorMsg{URL: url, Err: err}
		}
		return AddFeedSuccessMsg{Feed: f}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		var openErr error
		if openFn != nil {
			if openErr = openFn(url); openErr == nil {
				return OpenURLSuccessMsg{Status: "Opened link in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, link copied to clipboard"}
			}
		}
		if openErr != nil {
			return OpenURLErrorMsg{Err: openErr}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open link or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Link copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy link to clipboard")}
	}
}
