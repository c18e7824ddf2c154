package view

import (
	"strings"

	"github.com/glabrego/feedr/internal/feed"
)

type WrapFunc func(string, int) []string

// DetailMetaLines is the header block shown above an item body.
func DetailMetaLines(feedTitle string, item feed.Item, read bool, width int, wrap WrapFunc) []string {
	lines := make([]string, 0, 12)
	lines = append(lines, wrap(item.Title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len([]rune(item.Title))))))
	lines = append(lines, "")

	if feedTitle != "" {
		lines = append(lines, wrap("Feed: "+feedTitle, width)...)
	}
	if item.FormattedDate != "" {
		lines = append(lines, "Date: "+item.FormattedDate)
	}
	if item.Author != "" {
		lines = append(lines, wrap("Author: "+item.Author, width)...)
	}
	if read {
		lines = append(lines, "Read: yes")
	} else {
		lines = append(lines, "Read: no")
	}
	if item.Link != "" {
		lines = append(lines, wrap("Link: "+item.Link, width)...)
	}
	lines = append(lines, "")
	return lines
}

// RenderDetailLines returns the window of lines starting at top.
func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}
