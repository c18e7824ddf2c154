package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/feedr/internal/tui/theme"
)

// Toolbar returns the key hints for a screen in normal mode.
func Toolbar(screen string, hasFeeds bool) string {
	switch screen {
	case "dashboard":
		if !hasFeeds {
			return "1/2/3 quick add | a add feed | ctrl+c categories | q quit"
		}
		return "j/k move | enter read | o open | / search | f filters | c category | tab feeds | a add | r refresh | ctrl+c categories | q quit"
	case "feeds":
		return "j/k move | enter items | a add | d remove | c assign category | tab/esc dashboard | / search | r refresh | q quit"
	case "items":
		return "j/k move | enter read | o open | esc feeds | home dashboard | / search | r refresh | q quit"
	case "detail":
		return "j/k scroll | pgup/pgdown page | g/G top/bottom | o open | y copy link | esc back | home dashboard | q quit"
	case "categories":
		return "j/k move | n new | e rename | d delete | space expand | esc back | q quit"
	default:
		return "q quit"
	}
}

// ModeToolbar returns the key hints while an input mode is active.
func ModeToolbar(mode string) string {
	switch mode {
	case "insert":
		return "enter add feed | esc cancel"
	case "search":
		return "enter search | esc clear search"
	case "filter":
		return "c category | t time | a author | r read status | l length | x reset | esc done"
	case "category-name":
		return "enter save | esc cancel"
	default:
		return ""
	}
}

// AssignToolbar is shown in category management while a feed is waiting to
// be assigned.
func AssignToolbar() string {
	return "j/k move | enter assign | r remove from category | n new | esc cancel | q quit"
}

// Header renders the title bar with the current screen pill.
func Header(screen string, spinner string, loading bool, th tuitheme.Theme) string {
	parts := []string{th.Title.Render("feedr"), th.ModePill.Render(screen)}
	if loading {
		parts = append(parts, th.StateLoad.Render(strings.TrimSpace(spinner+" refreshing")))
	}
	return strings.Join(parts, " ")
}

// FilterBar summarizes the active filters and search for the dashboard.
func FilterBar(summary string, active, shown, total int, query string, searching bool, th tuitheme.Theme) string {
	parts := make([]string, 0, 3)
	if searching {
		parts = append(parts, th.MetaLabel.Render("search")+" "+th.MetaValue.Render(fmt.Sprintf("%q (%d)", query, shown)))
	}
	if active > 0 {
		parts = append(parts,
			th.MetaLabel.Render(fmt.Sprintf("filters (%d)", active))+" "+th.MetaValue.Render(summary),
			th.MetaValue.Render(fmt.Sprintf("%d of %d", shown, total)),
		)
	}
	return strings.Join(parts, " • ")
}

// CompactMessage is the status line. An error wins over a status message.
func CompactMessage(loading bool, errText, status string, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	main := "Ready"
	switch {
	case errText != "":
		state = "error"
		stateLabel = th.StateWarn.Render("state")
		main = errText
	case loading:
		state = "loading"
		stateLabel = th.StateLoad.Render("state")
	}
	if errText == "" && status != "" {
		main = status
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

// Prompt renders the single-line input for the active input mode.
func Prompt(label, input string, th tuitheme.Theme) string {
	return th.Prompt.Render(label) + " " + input
}
