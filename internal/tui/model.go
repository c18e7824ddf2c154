package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/feedr/internal/app"
	"github.com/glabrego/feedr/internal/feed"
	"github.com/glabrego/feedr/internal/tui/actions"
	"github.com/glabrego/feedr/internal/tui/platform"
	"github.com/glabrego/feedr/internal/tui/state"
	tuitheme "github.com/glabrego/feedr/internal/tui/theme"
)

type View int

const (
	ViewDashboard View = iota
	ViewFeedList
	ViewFeedItems
	ViewDetail
	ViewCategoryManagement
)

func (v View) String() string {
	switch v {
	case ViewFeedList:
		return "Feeds"
	case ViewFeedItems:
		return "Items"
	case ViewDetail:
		return "Detail"
	case ViewCategoryManagement:
		return "Categories"
	default:
		return "Dashboard"
	}
}

func (v View) key() string {
	switch v {
	case ViewFeedList:
		return "feeds"
	case ViewFeedItems:
		return "items"
	case ViewDetail:
		return "detail"
	case ViewCategoryManagement:
		return "categories"
	default:
		return "dashboard"
	}
}

type InputMode int

const (
	ModeNormal InputMode = iota
	ModeInsertURL
	ModeSearch
	ModeFilter
	ModeCategoryName
)

func (m InputMode) key() string {
	switch m {
	case ModeInsertURL:
		return "insert"
	case ModeSearch:
		return "search"
	case ModeFilter:
		return "filter"
	case ModeCategoryName:
		return "category-name"
	default:
		return "normal"
	}
}

type CategoryActionKind int

const (
	ActionNone CategoryActionKind = iota
	ActionCreate
	ActionRename
	ActionAssignFeed
)

// CategoryAction is the confirmation pending in category management.
type CategoryAction struct {
	Kind  CategoryActionKind
	Index int
	URL   string
}

// QuickAddFeeds are offered on an empty dashboard under keys 1, 2 and 3.
var QuickAddFeeds = []string{
	"https://news.ycombinator.com/rss",
	"https://feeds.feedburner.com/TechCrunch",
	"https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml",
}

const messageDuration = 3 * time.Second

type clearStatusMsg struct {
	id int
}

type clearErrorMsg struct {
	id int
}

type Model struct {
	service      *app.Service
	source       app.FeedSource
	fetchTimeout time.Duration

	view View
	mode InputMode

	input   textinput.Model
	spinner spinner.Model
	pending int

	dashCursor int
	feedCursor int
	itemCursor int
	current    app.ItemRef
	detailFrom View
	scroll     state.Scroll

	categoryAction CategoryAction
	nameAction     CategoryAction

	status   string
	statusID int
	errText  string
	errID    int

	width     int
	height    int
	openURLFn func(string) error
	copyURLFn func(string) error
	theme     tuitheme.Theme
}

type Option func(*Model)

func WithFetchTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.fetchTimeout = d
		}
	}
}

func WithTheme(th tuitheme.Theme) Option {
	return func(m *Model) { m.theme = th }
}

// WithLinkHandlers replaces the browser and clipboard integrations.
func WithLinkHandlers(openFn, copyFn func(string) error) Option {
	return func(m *Model) {
		m.openURLFn = openFn
		m.copyURLFn = copyFn
	}
}

func NewModel(service *app.Service, source app.FeedSource, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 2048

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		service:      service,
		source:       source,
		fetchTimeout: actions.DefaultFetchTimeout,
		input:        ti,
		spinner:      sp,
		openURLFn:    platform.OpenURLInBrowser,
		copyURLFn:    platform.CopyURLToClipboard,
		theme:        tuitheme.Default(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if len(service.Bookmarks()) > 0 {
		m.pending = 1
	}
	return m
}

// Init starts the initial refresh of every bookmark.
func (m Model) Init() tea.Cmd {
	urls := m.service.Bookmarks()
	if len(urls) == 0 || m.source == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, actions.RefreshCmd(m.source, urls, m.fetchTimeout))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-20)
		m.syncScroll()
		return m, nil
	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case actions.RefreshMsg:
		m.finishPending()
		m.replaceFeeds(msg.URLs, msg.Feeds)
		if msg.Err != nil {
			return m.setError("Failed to " + msg.Err.Error())
		}
		return m.setStatus(fmt.Sprintf("Refreshed %d feeds in %dms", len(msg.Feeds), msg.Duration.Milliseconds()))
	case actions.AddFeedSuccessMsg:
		m.finishPending()
		if err := m.service.AddFeed(context.Background(), msg.Feed); err != nil {
			return m.setError("Failed to add feed: " + err.Error())
		}
		m.clampSelections()
		return m.setStatus("Added feed: " + msg.Feed.Title)
	case actions.AddFeedErrorMsg:
		m.finishPending()
		return m.setError("Failed to add feed: " + msg.Err.Error())
	case actions.OpenURLSuccessMsg:
		return m.setStatus(msg.Status)
	case actions.OpenURLErrorMsg:
		return m.setError("Failed to open link: " + msg.Err.Error())
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case clearErrorMsg:
		if msg.id == m.errID {
			m.errText = ""
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) loading() bool { return m.pending > 0 }

func (m *Model) finishPending() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m Model) setStatus(text string) (Model, tea.Cmd) {
	m.status = text
	m.statusID++
	return m, clearStatusCmd(m.statusID, messageDuration)
}

func (m Model) setError(text string) (Model, tea.Cmd) {
	m.errText = text
	m.errID++
	return m, clearErrorCmd(m.errID, messageDuration)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func clearErrorCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearErrorMsg{id: id}
	})
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	urls := m.service.Bookmarks()
	if len(urls) == 0 {
		m.replaceFeeds(nil, nil)
		return m.setStatus("No feeds to refresh")
	}
	m.pending++
	return m, tea.Batch(m.spinner.Tick, actions.RefreshCmd(m.source, urls, m.fetchTimeout))
}

func (m Model) addFeed(url string) (tea.Model, tea.Cmd) {
	m.pending++
	return m, tea.Batch(m.spinner.Tick, actions.AddFeedCmd(m.source, url, m.fetchTimeout))
}

// replaceFeeds merges a finished refresh of urls and re-resolves positional
// selections by feed URL and item identity, since a refresh may reorder both.
func (m *Model) replaceFeeds(urls []string, fetched []feed.Feed) {
	prevFeed, hadFeed := m.service.Feed(m.feedCursor)
	prevDetailFeed, prevItem, hadItem := m.service.Item(m.current)

	m.service.MergeRefreshed(urls, fetched)
	feeds := m.service.Feeds()

	if hadFeed {
		if i, ok := feedIndex(feeds, prevFeed.URL); ok {
			m.feedCursor = i
		} else if m.view == ViewFeedItems {
			m.view = ViewFeedList
			m.itemCursor = 0
		}
	}
	if m.view == ViewDetail {
		ref, ok := findItem(feeds, prevDetailFeed.URL, prevItem)
		if !hadItem || !ok {
			m.view = ViewDashboard
			m.scroll = state.Scroll{}
		} else {
			m.current = ref
		}
	}
	m.clampSelections()
}

func feedIndex(feeds []feed.Feed, url string) (int, bool) {
	for i, f := range feeds {
		if f.URL == url {
			return i, true
		}
	}
	return 0, false
}

func findItem(feeds []feed.Feed, url string, item feed.Item) (app.ItemRef, bool) {
	fi, ok := feedIndex(feeds, url)
	if !ok {
		return app.ItemRef{}, false
	}
	key := app.ItemKey(url, item)
	for ii, candidate := range feeds[fi].Items {
		if app.ItemKey(url, candidate) == key {
			return app.ItemRef{Feed: fi, Item: ii}, true
		}
	}
	return app.ItemRef{}, false
}

func (m *Model) clampSelections() {
	feeds := m.service.Feeds()
	m.dashCursor = state.ClampCursor(m.dashCursor, len(m.service.Visible()))
	m.feedCursor = state.ClampCursor(m.feedCursor, len(feeds))
	if f, ok := m.service.Feed(m.feedCursor); ok {
		m.itemCursor = state.ClampCursor(m.itemCursor, len(f.Items))
	} else {
		m.itemCursor = 0
		if m.view == ViewFeedItems {
			m.view = ViewFeedList
		}
	}
	if len(feeds) == 0 && m.view == ViewFeedList {
		m.view = ViewDashboard
	}
	m.syncScroll()
}

func (m Model) openDetail(ref app.ItemRef, from View) (tea.Model, tea.Cmd) {
	f, item, ok := m.service.Item(ref)
	if !ok {
		return m, nil
	}
	m.current = ref
	m.detailFrom = from
	m.view = ViewDetail
	m.scroll = state.Scroll{}
	err := m.service.MarkRead(context.Background(), f, item)
	m.clampSelections()
	if err != nil {
		return m.setError("Failed to mark item as read: " + err.Error())
	}
	return m, nil
}

func (m Model) leaveDetail(to View) Model {
	m.view = to
	m.scroll = state.Scroll{}
	m.clampSelections()
	return m
}

func (m Model) openLink(ref app.ItemRef) (tea.Model, tea.Cmd) {
	_, item, ok := m.service.Item(ref)
	if !ok {
		return m, nil
	}
	link, err := platform.ValidateLink(item.Link)
	if err != nil {
		return m.setError("Failed to open link: " + err.Error())
	}
	return m, actions.OpenURLCmd(link, m.openURLFn, m.copyURLFn)
}

func (m Model) copyLink(ref app.ItemRef) (tea.Model, tea.Cmd) {
	_, item, ok := m.service.Item(ref)
	if !ok {
		return m, nil
	}
	link, err := platform.ValidateLink(item.Link)
	if err != nil {
		return m.setError("Failed to copy link: " + err.Error())
	}
	return m, actions.CopyURLCmd(link, m.copyURLFn)
}

func (m Model) openCategoryManagement(action CategoryAction) (tea.Model, tea.Cmd) {
	m.view = ViewCategoryManagement
	m.categoryAction = action
	if _, ok := m.service.SelectedCategory(); !ok && len(m.service.Categories()) > 0 {
		m.service.SelectCategory(0)
	}
	return m, nil
}

func (m Model) startInput(mode InputMode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) endInput() Model {
	m.mode = ModeNormal
	m.input.Reset()
	m.input.Blur()
	return m
}

// CurrentView and Mode expose the state machine position.
func (m Model) CurrentView() View { return m.view }

func (m Model) Mode() InputMode { return m.mode }

func (m Model) Err() string { return m.errText }

func (m Model) Status() string { return m.status }
