package tui

import (
	"fmt"
	"strings"

	"github.com/glabrego/feedr/internal/render/article"
	"github.com/glabrego/feedr/internal/tui/state"
	tuitree "github.com/glabrego/feedr/internal/tui/tree"
	"github.com/glabrego/feedr/internal/tui/view"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(view.Header(m.view.String(), m.spinner.View(), m.loading(), m.theme))
	b.WriteString("\n")
	if extra := m.extraLine(); extra != "" {
		b.WriteString(extra)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.view {
	case ViewFeedList:
		b.WriteString(m.feedListView())
	case ViewFeedItems:
		b.WriteString(m.feedItemsView())
	case ViewDetail:
		b.WriteString(m.detailView())
	case ViewCategoryManagement:
		b.WriteString(m.categoryView())
	default:
		b.WriteString(m.dashboardView())
	}

	b.WriteString("\n")
	b.WriteString(view.CompactMessage(m.loading(), m.errText, m.status, m.theme))
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.toolbar()))
	b.WriteString("\n")
	return b.String()
}

// extraLine is the input prompt while typing, or the filter bar on the
// dashboard.
func (m Model) extraLine() string {
	switch m.mode {
	case ModeInsertURL:
		return view.Prompt("Feed URL:", m.input.View(), m.theme)
	case ModeSearch:
		return view.Prompt("Search:", m.input.View(), m.theme)
	case ModeCategoryName:
		return view.Prompt("Category name:", m.input.View(), m.theme)
	}
	if m.view == ViewDashboard || m.mode == ModeFilter {
		active, shown, total := m.service.FilterStats()
		return view.FilterBar(m.service.FilterSummary(), active, shown, total, m.service.SearchQuery(), m.service.Searching(), m.theme)
	}
	if m.view == ViewCategoryManagement && m.categoryAction.Kind == ActionAssignFeed {
		return m.theme.MetaLabel.Render("assign") + " " + m.theme.MetaValue.Render(tuitree.FeedName(m.service.Feeds(), m.categoryAction.URL))
	}
	return ""
}

func (m Model) toolbar() string {
	if m.mode != ModeNormal {
		return view.ModeToolbar(m.mode.key())
	}
	if m.view == ViewCategoryManagement && m.categoryAction.Kind == ActionAssignFeed {
		return view.AssignToolbar()
	}
	return view.Toolbar(m.view.key(), len(m.service.Feeds()) > 0)
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 100
}

func (m Model) bodyHeight() int {
	return state.BodyHeight(m.height, m.extraLine() != "")
}

func (m Model) dashboardView() string {
	if len(m.service.Feeds()) == 0 && !m.service.Searching() {
		if m.loading() {
			return "Loading feeds...\n"
		}
		return strings.Join(view.WelcomeLines(), "\n") + "\n"
	}
	visible := m.service.Visible()
	if len(visible) == 0 {
		if m.service.Searching() {
			return "No items match the search.\n"
		}
		return "No items match the active filters.\n"
	}
	start, end := state.CenteredWindow(len(visible), m.dashCursor, m.bodyHeight())
	var b strings.Builder
	for i := start; i < end; i++ {
		f, item, ok := m.service.Item(visible[i])
		if !ok {
			continue
		}
		b.WriteString(view.RenderItemLine(view.ItemLineParams{
			Title:  item.Title,
			Source: f.Title,
			Date:   item.FormattedDate,
			Read:   m.service.IsRead(f, item),
			Active: i == m.dashCursor,
			Width:  m.contentWidth(),
		}, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) feedListView() string {
	feeds := m.service.Feeds()
	if len(feeds) == 0 {
		return "No feeds. Press a to add one.\n"
	}
	categories := m.service.Categories()
	start, end := state.CenteredWindow(len(feeds), m.feedCursor, m.bodyHeight())
	var b strings.Builder
	for i := start; i < end; i++ {
		f := feeds[i]
		category := ""
		if ci, ok := m.service.CategoryForFeed(f.URL); ok {
			category = categories[ci].Name
		}
		unread := 0
		for _, item := range f.Items {
			if !m.service.IsRead(f, item) {
				unread++
			}
		}
		b.WriteString(view.RenderFeedLine(view.FeedLineParams{
			Title:    f.Title,
			Items:    len(f.Items),
			Unread:   unread,
			Category: category,
			Active:   i == m.feedCursor,
			Width:    m.contentWidth(),
		}, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) feedItemsView() string {
	f, ok := m.service.Feed(m.feedCursor)
	if !ok {
		return "No feed selected.\n"
	}
	var b strings.Builder
	b.WriteString(m.theme.Section.Render(f.Title))
	b.WriteString("\n")
	if len(f.Items) == 0 {
		b.WriteString("This feed has no items.\n")
		return b.String()
	}
	start, end := state.CenteredWindow(len(f.Items), m.itemCursor, m.bodyHeight()-1)
	for i := start; i < end; i++ {
		item := f.Items[i]
		b.WriteString(view.RenderItemLine(view.ItemLineParams{
			Title:  item.Title,
			Date:   item.FormattedDate,
			Read:   m.service.IsRead(f, item),
			Active: i == m.itemCursor,
			Width:  m.contentWidth(),
		}, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	lines := m.detailLines()
	if len(lines) == 0 {
		return "No item selected.\n"
	}
	return view.RenderDetailLines(lines, m.scroll.Offset, m.bodyHeight())
}

func (m Model) detailLines() []string {
	f, item, ok := m.service.Item(m.current)
	if !ok {
		return nil
	}
	width := m.contentWidth()
	lines := view.DetailMetaLines(f.Title, item, m.service.IsRead(f, item), width, article.Wrap)
	body := article.Lines(item.Description, width, article.Options{Styled: true})
	if len(body) == 0 {
		body = []string{"No description available."}
	}
	return append(lines, body...)
}

// syncScroll recomputes the scroll bound from the rendered detail content.
func (m *Model) syncScroll() {
	if m.view != ViewDetail {
		m.scroll = m.scroll.WithMax(0)
		return
	}
	m.scroll = m.scroll.WithMax(state.MaxScroll(len(m.detailLines()), m.bodyHeight()))
}

func (m Model) categoryView() string {
	categories := m.service.Categories()
	rows := tuitree.BuildRows(categories, m.service.Feeds())
	if len(categories) == 0 {
		var b strings.Builder
		b.WriteString("No categories yet. Press n to create one.\n")
		for _, row := range rows {
			b.WriteString(view.RenderCategoryRow(row, false, m.contentWidth(), m.theme))
			b.WriteString("\n")
		}
		return b.String()
	}
	selected, hasSelected := m.service.SelectedCategory()
	cursor := -1
	if hasSelected {
		cursor = tuitree.CategoryRow(rows, selected)
	}
	start, end := state.CenteredWindow(len(rows), max(cursor, 0), m.bodyHeight())
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(view.RenderCategoryRow(rows[i], i == cursor, m.contentWidth(), m.theme))
		b.WriteString("\n")
	}
	if m.categoryAction.Kind == ActionAssignFeed && hasSelected && categories[selected].Contains(m.categoryAction.URL) {
		b.WriteString(m.theme.MetaLabel.Render(fmt.Sprintf("already in %s", categories[selected].Name)))
		b.WriteString("\n")
	}
	return b.String()
}
