package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/feedr/internal/app"
	"github.com/glabrego/feedr/internal/feed"
	"github.com/glabrego/feedr/internal/tui/actions"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	feeds map[string]feed.Feed
	calls []string
}

func (f *fakeSource) Fetch(ctx context.Context, url string) (feed.Feed, error) {
	f.calls = append(f.calls, url)
	if got, ok := f.feeds[url]; ok {
		return got, nil
	}
	return feed.Feed{}, fmt.Errorf("HTTP error 404: Not Found")
}

type memRepo struct {
	bookmarks  []string
	categories []feed.Category
	readItems  []string
	saveErr    error
}

func (r *memRepo) LoadBookmarks(context.Context) ([]string, error) {
	return append([]string(nil), r.bookmarks...), nil
}

func (r *memRepo) SaveBookmarks(_ context.Context, urls []string) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.bookmarks = append([]string(nil), urls...)
	return nil
}

func (r *memRepo) LoadCategories(context.Context) ([]feed.Category, error) {
	return cloneCategories(r.categories), nil
}

func (r *memRepo) SaveCategories(_ context.Context, categories []feed.Category) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.categories = cloneCategories(categories)
	return nil
}

func (r *memRepo) LoadReadItems(context.Context) ([]string, error) {
	return append([]string(nil), r.readItems...), nil
}

func (r *memRepo) SaveReadItems(_ context.Context, keys []string) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.readItems = append([]string(nil), keys...)
	return nil
}

func cloneCategories(in []feed.Category) []feed.Category {
	out := make([]feed.Category, len(in))
	for i, c := range in {
		c.Feeds = feed.NewFeedSet(c.Feeds.Sorted()...)
		out[i] = c
	}
	return out
}

func sampleFeeds() []feed.Feed {
	return []feed.Feed{
		{
			URL:   "https://a.example/rss",
			Title: "Alpha Blog",
			Items: []feed.Item{
				{Title: "Fresh post", Link: "https://a.example/fresh", Description: "<p>fresh body</p>", PubDate: testNow.Add(-time.Hour).Format(time.RFC3339), FormattedDate: "1 hours ago"},
				{Title: "Old post", Link: "https://a.example/old", Description: "<p>old body</p>", PubDate: testNow.Add(-40 * 24 * time.Hour).Format(time.RFC3339), FormattedDate: "April 22, 2024"},
			},
		},
		{
			URL:   "https://b.example/rss",
			Title: "Beta News",
			Items: []feed.Item{
				{Title: "Learning Rust", Link: "https://b.example/rust", Author: "Ferris"},
			},
		},
	}
}

type fixture struct {
	repo   *memRepo
	source *fakeSource
	svc    *app.Service
	opened []string
	copied []string
}

// newFixture builds a model with feeds already loaded, as after the first
// refresh completes.
func newFixture(t *testing.T, feeds ...feed.Feed) (*fixture, Model) {
	t.Helper()
	fx := &fixture{
		repo:   &memRepo{},
		source: &fakeSource{feeds: map[string]feed.Feed{}},
	}
	for _, f := range feeds {
		fx.repo.bookmarks = append(fx.repo.bookmarks, f.URL)
		fx.source.feeds[f.URL] = f
	}
	fx.svc = app.NewService(fx.source, fx.repo, app.WithClock(func() time.Time { return testNow }))
	if err := fx.svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	m := NewModel(fx.svc, fx.source, WithLinkHandlers(
		func(u string) error { fx.opened = append(fx.opened, u); return nil },
		func(u string) error { fx.copied = append(fx.copied, u); return nil },
	))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if len(feeds) > 0 {
		m, _ = update(t, m, refreshMsg(feeds))
	}
	return fx, m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return nm, cmd
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(t, m, keyMsg(k))
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// collect runs cmd and flattens batches. Timer commands are skipped by the
// callers, which only collect commands returned for fetches and links.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// refreshMsg reports a refresh in which every one of feeds was fetched.
func refreshMsg(feeds []feed.Feed) actions.RefreshMsg {
	urls := make([]string, 0, len(feeds))
	for _, f := range feeds {
		urls = append(urls, f.URL)
	}
	return actions.RefreshMsg{URLs: urls, Feeds: feeds}
}

func feedURLs(feeds []feed.Feed) []string {
	var out []string
	for _, f := range feeds {
		out = append(out, f.URL)
	}
	return out
}

func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func dashboardTitles(m Model) []string {
	var out []string
	for _, ref := range m.service.Visible() {
		_, item, _ := m.service.Item(ref)
		out = append(out, item.Title)
	}
	return out
}

func joinTitles(titles []string) string { return strings.Join(titles, ",") }

func bgCtx() context.Context { return context.Background() }
