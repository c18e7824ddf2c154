package actions

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/glabrego/feedr/internal/feed"
)

type fakeSource struct {
	feeds        map[string]feed.Feed
	errs         map[string]error
	calls        []string
	lastDeadline time.Time
}

func (f *fakeSource) Fetch(ctx context.Context, url string) (feed.Feed, error) {
	if dl, ok := ctx.Deadline(); ok {
		f.lastDeadline = dl
	}
	f.calls = append(f.calls, url)
	if err := f.errs[url]; err != nil {
		return feed.Feed{}, err
	}
	return f.feeds[url], nil
}

func TestRefreshCmd_KeepsSuccessesAndLastError(t *testing.T) {
	src := &fakeSource{
		feeds: map[string]feed.Feed{
			"https://a.example/rss": {URL: "https://a.example/rss", Title: "A"},
			"https://c.example/rss": {URL: "https://c.example/rss", Title: "C"},
		},
		errs: map[string]error{"https://b.example/rss": errors.New("boom")},
	}
	urls := []string{"https://a.example/rss", "https://b.example/rss", "https://c.example/rss"}
	msg := RefreshCmd(src, urls, time.Second)()

	refresh, ok := msg.(RefreshMsg)
	if !ok {
		t.Fatalf("expected RefreshMsg, got %T", msg)
	}
	if len(refresh.Feeds) != 2 || refresh.Feeds[0].Title != "A" || refresh.Feeds[1].Title != "C" {
		t.Fatalf("unexpected refreshed feeds: %+v", refresh.Feeds)
	}
	if refresh.Err == nil || !strings.Contains(refresh.Err.Error(), "boom") {
		t.Fatalf("expected last failure to be reported, got %v", refresh.Err)
	}
	if !slices.Equal(refresh.URLs, urls) {
		t.Fatalf("expected refreshed urls %v, got %v", urls, refresh.URLs)
	}
	if !slices.Equal(src.calls, urls) {
		t.Fatalf("expected fetches in order %v, got %v", urls, src.calls)
	}
	if src.lastDeadline.IsZero() {
		t.Fatal("expected refresh context deadline to be set")
	}
}

func TestRefreshCmd_CopiesURLs(t *testing.T) {
	src := &fakeSource{feeds: map[string]feed.Feed{}}
	urls := []string{"https://a.example/rss"}
	cmd := RefreshCmd(src, urls, 0)
	urls[0] = "https://changed.example/rss"
	msg := cmd().(RefreshMsg)
	if !slices.Equal(src.calls, []string{"https://a.example/rss"}) {
		t.Fatalf("expected the original url to be fetched, got %v", src.calls)
	}
	if msg.URLs[0] != "https://a.example/rss" {
		t.Fatalf("expected message to carry the original url, got %v", msg.URLs)
	}
}

func TestAddFeedCmd(t *testing.T) {
	src := &fakeSource{
		feeds: map[string]feed.Feed{"https://a.example/rss": {URL: "https://a.example/rss", Title: "A"}},
		errs:  map[string]error{"https://bad.example/rss": errors.New("HTTP error 404: Not Found")},
	}

	msg := AddFeedCmd(src, "https://a.example/rss", time.Second)()
	success, ok := msg.(AddFeedSuccessMsg)
	if !ok {
		t.Fatalf("expected AddFeedSuccessMsg, got %T", msg)
	}
	if success.Feed.Title != "A" {
		t.Fatalf("unexpected feed: %+v", success.Feed)
	}

	msg = AddFeedCmd(src, "https://bad.example/rss", time.Second)()
	failure, ok := msg.(AddFeedErrorMsg)
	if !ok {
		t.Fatalf("expected AddFeedErrorMsg, got %T", msg)
	}
	if failure.URL != "https://bad.example/rss" || failure.Err.Error() != "HTTP error 404: Not Found" {
		t.Fatalf("unexpected failure: %+v", failure)
	}
}

func TestOpenURLCmd(t *testing.T) {
	ok := func(string) error { return nil }
	fail := func(string) error { return errors.New("no browser") }

	msg := OpenURLCmd("https://example.com", ok, fail)()
	opened, isSuccess := msg.(OpenURLSuccessMsg)
	if !isSuccess || !opened.Opened {
		t.Fatalf("expected link opened, got %#v", msg)
	}

	msg = OpenURLCmd("https://example.com", fail, ok)()
	copied, isSuccess := msg.(OpenURLSuccessMsg)
	if !isSuccess || copied.Opened || !strings.Contains(copied.Status, "copied") {
		t.Fatalf("expected clipboard fallback, got %#v", msg)
	}

	msg = OpenURLCmd("https://example.com", fail, fail)()
	failed, isErr := msg.(OpenURLErrorMsg)
	if !isErr || failed.Err.Error() != "no browser" {
		t.Fatalf("expected browser error, got %#v", msg)
	}
}

func TestCopyURLCmd(t *testing.T) {
	msg := CopyURLCmd("https://example.com", func(string) error { return nil })()
	success, ok := msg.(OpenURLSuccessMsg)
	if !ok || success.Status != "Link copied to clipboard" {
		t.Fatalf("expected copy status, got %#v", msg)
	}

	msg = CopyURLCmd("https://example.com", nil)()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}
