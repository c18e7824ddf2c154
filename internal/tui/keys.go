package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/feedr/internal/app"
	"github.com/glabrego/feedr/internal/tui/state"
)

// handleKey dispatches on the input mode first and on the view only in
// normal mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeInsertURL:
		return m.handleInsertURLKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeFilter:
		return m.handleFilterKey(msg)
	case ModeCategoryName:
		return m.handleCategoryNameKey(msg)
	}

	if msg.String() == "q" {
		return m, tea.Quit
	}
	switch m.view {
	case ViewFeedList:
		return m.handleFeedListKey(msg)
	case ViewFeedItems:
		return m.handleFeedItemsKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewCategoryManagement:
		return m.handleCategoryKey(msg)
	default:
		return m.handleDashboardKey(msg)
	}
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.service.Visible()
	switch msg.String() {
	case "ctrl+c":
		return m.openCategoryManagement(CategoryAction{})
	case "f":
		m.mode = ModeFilter
		return m, nil
	case "c":
		f := m.service.Filter()
		f.Category = app.CycleCategory(f.Category, m.service.AvailableCategories())
		m.service.SetFilter(f)
		m.dashCursor = 0
		return m, nil
	case "tab":
		m.view = ViewFeedList
		return m, nil
	case "a":
		return m.startInput(ModeInsertURL, "https://example.com/feed.xml", "")
	case "r":
		return m.refresh()
	case "/":
		return m.startInput(ModeSearch, "search titles and descriptions", m.service.SearchQuery())
	case "esc":
		if m.service.Searching() {
			m.service.ClearSearch()
			m.dashCursor = 0
		}
		return m, nil
	case "1", "2", "3":
		if len(m.service.Feeds()) > 0 {
			return m, nil
		}
		return m.addFeed(QuickAddFeeds[int(msg.String()[0]-'1')])
	case "up", "k":
		m.dashCursor = state.MoveCursor(m.dashCursor, -1, len(visible))
		return m, nil
	case "down", "j":
		m.dashCursor = state.MoveCursor(m.dashCursor, 1, len(visible))
		return m, nil
	case "enter":
		if m.dashCursor < len(visible) {
			return m.openDetail(visible[m.dashCursor], ViewDashboard)
		}
		return m, nil
	case "o":
		if m.dashCursor < len(visible) {
			return m.openLink(visible[m.dashCursor])
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleFeedListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	feeds := m.service.Feeds()
	switch msg.String() {
	case "tab", "shift+tab", "h", "esc", "home":
		m.view = ViewDashboard
		return m, nil
	case "a":
		return m.startInput(ModeInsertURL, "https://example.com/feed.xml", "")
	case "d":
		if len(feeds) == 0 {
			return m, nil
		}
		title := feeds[m.feedCursor].Title
		err := m.service.RemoveFeed(context.Background(), m.feedCursor)
		m.clampSelections()
		if err != nil {
			return m.setError("Failed to remove feed: " + err.Error())
		}
		return m.setStatus("Removed feed: " + title)
	case "/":
		return m.startInput(ModeSearch, "search titles and descriptions", m.service.SearchQuery())
	case "r":
		return m.refresh()
	case "up", "k":
		m.feedCursor = state.MoveCursor(m.feedCursor, -1, len(feeds))
		return m, nil
	case "down", "j":
		m.feedCursor = state.MoveCursor(m.feedCursor, 1, len(feeds))
		return m, nil
	case "enter", "l":
		if len(feeds) > 0 {
			m.view = ViewFeedItems
			m.itemCursor = 0
		}
		return m, nil
	case "ctrl+c":
		return m.openCategoryManagement(CategoryAction{})
	case "c":
		if len(feeds) == 0 {
			return m, nil
		}
		return m.openCategoryManagement(CategoryAction{Kind: ActionAssignFeed, URL: feeds[m.feedCursor].URL})
	}
	return m, nil
}

func (m Model) handleFeedItemsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, _ := m.service.Feed(m.feedCursor)
	switch msg.String() {
	case "esc", "h", "backspace":
		m.view = ViewFeedList
		return m, nil
	case "home":
		m.view = ViewDashboard
		return m, nil
	case "/":
		return m.startInput(ModeSearch, "search titles and descriptions", m.service.SearchQuery())
	case "r":
		return m.refresh()
	case "up", "k":
		m.itemCursor = state.MoveCursor(m.itemCursor, -1, len(f.Items))
		return m, nil
	case "down", "j":
		m.itemCursor = state.MoveCursor(m.itemCursor, 1, len(f.Items))
		return m, nil
	case "enter":
		return m.openDetail(app.ItemRef{Feed: m.feedCursor, Item: m.itemCursor}, ViewFeedItems)
	case "o":
		return m.openLink(app.ItemRef{Feed: m.feedCursor, Item: m.itemCursor})
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "h", "backspace":
		if m.service.Searching() {
			return m.leaveDetail(ViewDashboard), nil
		}
		return m.leaveDetail(m.detailFrom), nil
	case "home":
		return m.leaveDetail(ViewDashboard), nil
	case "up", "k":
		m.scroll = m.scroll.By(-1)
	case "down", "j":
		m.scroll = m.scroll.By(1)
	case "pgup":
		m.scroll = m.scroll.By(-state.DetailPageStep)
	case "pgdown", " ":
		m.scroll = m.scroll.By(state.DetailPageStep)
	case "g":
		m.scroll = m.scroll.Top()
	case "G", "end":
		m.scroll = m.scroll.Bottom()
	case "r":
		return m.refresh()
	case "o":
		return m.openLink(m.current)
	case "y":
		return m.copyLink(m.current)
	}
	return m, nil
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	categories := m.service.Categories()
	selected, hasSelected := m.service.SelectedCategory()

	switch msg.String() {
	case "esc":
		m.view = ViewFeedList
		m.categoryAction = CategoryAction{}
		m.clampSelections()
		return m, nil
	case "n":
		m.nameAction = CategoryAction{Kind: ActionCreate}
		return m.startInput(ModeCategoryName, "category name", "")
	case "e":
		if !hasSelected {
			return m, nil
		}
		m.nameAction = CategoryAction{Kind: ActionRename, Index: selected}
		return m.startInput(ModeCategoryName, "category name", categories[selected].Name)
	case "d":
		if !hasSelected {
			return m, nil
		}
		name := categories[selected].Name
		if err := m.service.DeleteCategory(ctx, selected); err != nil {
			return m.setError("Failed to delete category: " + err.Error())
		}
		return m.setStatus("Deleted category: " + name)
	case "enter":
		if m.categoryAction.Kind != ActionAssignFeed {
			if hasSelected {
				return m.toggleCategory(selected)
			}
			return m, nil
		}
		if !hasSelected {
			return m, nil
		}
		if err := m.service.AssignFeed(ctx, m.categoryAction.URL, selected); err != nil {
			return m.setError("Failed to assign feed to category: " + err.Error())
		}
		m.view = ViewFeedList
		m.categoryAction = CategoryAction{}
		return m.setStatus("Added feed to " + categories[selected].Name)
	case "up", "k":
		if hasSelected {
			m.service.SelectCategory(state.MoveCursor(selected, -1, len(categories)))
		} else if len(categories) > 0 {
			m.service.SelectCategory(0)
		}
		return m, nil
	case "down", "j":
		if hasSelected {
			m.service.SelectCategory(state.MoveCursor(selected, 1, len(categories)))
		} else if len(categories) > 0 {
			m.service.SelectCategory(0)
		}
		return m, nil
	case " ":
		if hasSelected {
			return m.toggleCategory(selected)
		}
		return m, nil
	case "r":
		if m.categoryAction.Kind != ActionAssignFeed || !hasSelected {
			return m, nil
		}
		if err := m.service.RemoveFeedFromCategory(ctx, m.categoryAction.URL, selected); err != nil {
			return m.setError("Failed to remove feed from category: " + err.Error())
		}
		return m.setStatus("Removed feed from " + categories[selected].Name)
	}
	return m, nil
}

func (m Model) toggleCategory(index int) (tea.Model, tea.Cmd) {
	if err := m.service.ToggleCategoryExpanded(context.Background(), index); err != nil {
		return m.setError("Failed to toggle category: " + err.Error())
	}
	return m, nil
}

func (m Model) handleInsertURLKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		url := strings.TrimSpace(m.input.Value())
		m = m.endInput()
		if url == "" {
			return m, nil
		}
		return m.addFeed(url)
	case "esc":
		return m.endInput(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.service.SetSearch(strings.TrimSpace(m.input.Value()))
		m.dashCursor = 0
		m.view = ViewDashboard
		m.scroll = state.Scroll{}
		return m.endInput(), nil
	case "esc":
		m.service.ClearSearch()
		m.dashCursor = 0
		return m.endInput(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.service.Filter()
	switch msg.String() {
	case "esc", "f":
		m.mode = ModeNormal
		return m, nil
	case "c":
		f.Category = app.CycleCategory(f.Category, m.service.AvailableCategories())
	case "t":
		f.Age = f.Age.Next()
	case "a":
		f.HasAuthor = app.CycleTriState(f.HasAuthor)
	case "r":
		f.ReadStatus = app.CycleTriState(f.ReadStatus)
	case "l":
		f.MinLength = app.CycleMinLength(f.MinLength)
	case "x":
		f = app.FilterOptions{}
	default:
		return m, nil
	}
	m.service.SetFilter(f)
	m.dashCursor = 0
	return m, nil
}

func (m Model) handleCategoryNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.input.Value()
		action := m.nameAction
		m.nameAction = CategoryAction{}
		m = m.endInput()
		return m.applyCategoryName(action, name)
	case "esc":
		m.nameAction = CategoryAction{}
		return m.endInput(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) applyCategoryName(action CategoryAction, name string) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch action.Kind {
	case ActionCreate:
		if err := m.service.CreateCategory(ctx, name); err != nil {
			return m.setError("Failed to create category: " + categoryErrText(err))
		}
		return m.setStatus("Created category: " + strings.TrimSpace(name))
	case ActionRename:
		if err := m.service.RenameCategory(ctx, action.Index, name); err != nil {
			return m.setError("Failed to rename category: " + categoryErrText(err))
		}
		return m.setStatus("Renamed category to " + strings.TrimSpace(name))
	}
	return m, nil
}

func categoryErrText(err error) string {
	switch {
	case errors.Is(err, app.ErrEmptyCategoryName):
		return app.ErrEmptyCategoryName.Error()
	case errors.Is(err, app.ErrDuplicateCategoryName):
		return app.ErrDuplicateCategoryName.Error()
	default:
		return err.Error()
	}
}
