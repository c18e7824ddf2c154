package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	tuitheme "github.com/glabrego/feedr/internal/tui/theme"
	tuitree "github.com/glabrego/feedr/internal/tui/tree"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ItemLineParams struct {
	Title  string
	Source string
	Date   string
	Read   bool
	Active bool
	Width  int
}

// RenderItemLine draws one item with its date flush right. Source, when set,
// prefixes the title with the feed name.
func RenderItemLine(p ItemLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	readMarker := "•"
	if p.Read {
		readMarker = " "
	}
	prefix := fmt.Sprintf(" %s%s ", cursorMarker, readMarker)

	dateLabel := ""
	if p.Date != "" {
		dateLabel = "[" + p.Date + "]"
	}
	source := ""
	if p.Source != "" {
		source = truncateRunes(p.Source, 24) + " | "
	}
	available := p.Width - visibleLen(prefix) - visibleLen(source) - 1 - visibleLen(dateLabel)
	if available < 1 {
		available = 1
	}

	label := truncateRunes(strings.TrimSpace(p.Title), available)
	styled := th.FeedName.Render(source) + th.StyleItemTitle(p.Read, label)
	if source == "" {
		styled = th.StyleItemTitle(p.Read, label)
	}
	gap := p.Width - visibleLen(prefix) - visibleLen(source) - visibleLen(label) - visibleLen(dateLabel)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+styled+strings.Repeat(" ", gap)+dateLabel)
}

type FeedLineParams struct {
	Title    string
	Items    int
	Unread   int
	Category string
	Active   bool
	Width    int
}

func RenderFeedLine(p FeedLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	left := fmt.Sprintf(" %s %s", cursorMarker, strings.TrimSpace(p.Title))
	if p.Category != "" {
		left += " " + th.Category.Render("["+p.Category+"]")
	}
	right := fmt.Sprintf("%d items", p.Items)
	if p.Unread > 0 {
		right = th.UnreadCount.Render(fmt.Sprintf("%d unread", p.Unread)) + " / " + right
	}
	return renderSplitLine(left, right, p.Width, p.Active, th)
}

// RenderCategoryRow draws one row of the category management tree.
func RenderCategoryRow(row tuitree.Row, active bool, width int, th tuitheme.Theme) string {
	switch row.Kind {
	case tuitree.RowSection:
		return renderSplitLine(th.Section.Render("■ "+row.Label), fmt.Sprintf("%d", row.Count), width, false, th)
	case tuitree.RowCategory:
		marker := "▸ "
		if row.Expanded {
			marker = "▾ "
		}
		cursorMarker := " "
		if active {
			cursorMarker = ">"
		}
		left := cursorMarker + marker + th.Category.Render(row.Label)
		return renderSplitLine(left, th.UnreadCount.Render(fmt.Sprintf("%d", row.Count)), width, active, th)
	default:
		return "     " + truncateRunes(row.Label, max(1, width-5))
	}
}

// WelcomeLines is the dashboard body when no feed is subscribed.
func WelcomeLines() []string {
	return []string{
		"Welcome to feedr!",
		"",
		"You have no feeds yet. Press a to add one by URL, or pick a quick start:",
		"",
		"  1  Hacker News",
		"  2  TechCrunch",
		"  3  The New York Times",
	}
}

func renderSplitLine(left, right string, width int, active bool, th tuitheme.Theme) string {
	available := width - visibleLen(right) - 1
	if available < 1 {
		available = 1
	}
	if visibleLen(left) > available {
		left = truncateRunes(stripANSIText(left), available)
	}
	gap := width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(active, left+strings.Repeat(" ", gap)+right)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
