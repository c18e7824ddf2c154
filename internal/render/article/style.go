package article

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var ansiCodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

var (
	colorLavender = lipgloss.Color("#b4befe")
	colorBlue     = lipgloss.Color("#89b4fa")
	colorPeach    = lipgloss.Color("#fab387")
	colorMauve    = lipgloss.Color("#cba6f7")
	colorSubtext  = lipgloss.Color("#a6adc8")
	colorOverlay  = lipgloss.Color("#7f849c")

	headingStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	linkStyle        = lipgloss.NewStyle().Foreground(colorBlue).Faint(true)
	codeStyle        = lipgloss.NewStyle().Foreground(colorPeach)
	imageStyle       = lipgloss.NewStyle().Foreground(colorMauve).Italic(true)
	quoteStyle       = lipgloss.NewStyle().Italic(true).Foreground(colorSubtext)
	quoteMarkerStyle = lipgloss.NewStyle().Foreground(colorOverlay)
)

// styler applies colors in styled mode and is the identity otherwise.
type styler struct {
	on bool
}

func newStyler(on bool) styler { return styler{on: on} }

func (s styler) render(st lipgloss.Style, text string) string {
	if !s.on {
		return text
	}
	return st.Render(text)
}

func (s styler) heading(lines []string) []string {
	for i, line := range lines {
		lines[i] = s.render(headingStyle, line)
	}
	return lines
}

func (s styler) link(text string) string  { return s.render(linkStyle, text) }
func (s styler) code(text string) string  { return s.render(codeStyle, text) }
func (s styler) image(text string) string { return s.render(imageStyle, text) }

func (s styler) quote(line string) string {
	return s.render(quoteMarkerStyle, "│ ") + s.render(quoteStyle, line)
}

func visibleLen(s string) int {
	return runeLen(ansiCodes.ReplaceAllString(s, ""))
}
