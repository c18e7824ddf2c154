package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette names the Catppuccin swatches the styles are built from.
type Palette struct {
	Accent    lipgloss.Color
	Error     lipgloss.Color
	Busy      lipgloss.Color
	Highlight lipgloss.Color
	OK        lipgloss.Color
	Heading   lipgloss.Color
	Input     lipgloss.Color
	Pill      lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Muted     lipgloss.Color
	Faint     lipgloss.Color
	Surface   lipgloss.Color
}

var (
	Mocha = Palette{
		Accent: "#cba6f7", Error: "#f38ba8", Busy: "#fab387", Highlight: "#f9e2af",
		OK: "#a6e3a1", Heading: "#94e2d5", Input: "#89dceb", Pill: "#b4befe",
		Text: "#cdd6f4", Dim: "#a6adc8", Muted: "#bac2de", Faint: "#7f849c",
		Surface: "#313244",
	}
	Latte = Palette{
		Accent: "#8839ef", Error: "#d20f39", Busy: "#fe640b", Highlight: "#df8e1d",
		OK: "#40a02b", Heading: "#179299", Input: "#04a5e5", Pill: "#7287fd",
		Text: "#4c4f69", Dim: "#6c6f85", Muted: "#5c5f77", Faint: "#8c8fa1",
		Surface: "#ccd0da",
	}
)

type Theme struct {
	Title       lipgloss.Style
	ModePill    lipgloss.Style
	Section     lipgloss.Style
	UnreadCount lipgloss.Style
	ActiveLine  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
	StateIdle   lipgloss.Style
	StateWarn   lipgloss.Style
	StateLoad   lipgloss.Style
	Help        lipgloss.Style
	Prompt      lipgloss.Style

	TitleUnread lipgloss.Style
	TitleRead   lipgloss.Style
	Category    lipgloss.Style
	FeedName    lipgloss.Style
}

func Default() Theme { return New(Mocha) }

// ByName resolves a configured theme name; empty selects the default.
func ByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mocha", "dark":
		return New(Mocha), nil
	case "latte", "light":
		return New(Latte), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}

func New(p Palette) Theme {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return Theme{
		Title:       fg(p.Accent).Bold(true),
		ModePill:    fg(p.Pill).Background(p.Surface).Padding(0, 1),
		Section:     fg(p.Heading).Bold(true),
		UnreadCount: fg(p.Highlight).Bold(true),
		ActiveLine:  fg(p.Text).Background(p.Surface),
		MetaLabel:   fg(p.Faint),
		MetaValue:   fg(p.Muted),
		StateIdle:   fg(p.OK),
		StateWarn:   fg(p.Error),
		StateLoad:   fg(p.Busy),
		Help:        fg(p.Faint),
		Prompt:      fg(p.Input).Bold(true),
		TitleUnread: fg(p.Text).Bold(true),
		TitleRead:   fg(p.Dim),
		Category:    fg(p.Pill),
		FeedName:    fg(p.Heading),
	}
}

// StyleItemTitle renders unread titles bold and read titles dimmed.
func (t Theme) StyleItemTitle(read bool, title string) string {
	switch {
	case title == "":
		return ""
	case read:
		return t.TitleRead.Render(title)
	default:
		return t.TitleUnread.Render(title)
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if active {
		return t.ActiveLine.Render(line)
	}
	return line
}
