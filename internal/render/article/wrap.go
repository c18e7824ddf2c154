package article

import "strings"

// Wrap wraps plain text at width runes.
func Wrap(text string, width int) []string {
	return wrapText(text, width)
}

// wrapText wraps each paragraph of text at width runes, splitting words
// longer than a line.
func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	var out []string
	for _, p := range strings.Split(text, "\n") {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for runeLen(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				rs := []rune(word)
				out = append(out, string(rs[:width]))
				word = string(rs[width:])
			}
			switch {
			case line == "":
				line = word
			case visibleLen(line)+1+visibleLen(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func wrapPrefixed(text string, width int, first, rest string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for i, line := range wrapText(text, max(1, width-runeLen(first))) {
		if i == 0 {
			out = append(out, first+line)
			continue
		}
		out = append(out, rest+line)
	}
	return out
}

// wrapLines rewraps already rendered lines to a narrower width.
func wrapLines(lines []string, width int) []string {
	var out []string
	for _, line := range lines {
		if visibleLen(line) <= width || strings.Contains(line, "\x1b[") {
			out = append(out, line)
			continue
		}
		out = append(out, wrapText(line, width)...)
	}
	return out
}

// trimBlankLines drops leading and trailing blank lines and collapses
// consecutive blank lines into one.
func trimBlankLines(lines []string) []string {
	var out []string
	blank := true
	for _, line := range lines {
		isBlank := strings.TrimSpace(line) == ""
		if isBlank && blank {
			continue
		}
		out = append(out, line)
		blank = isBlank
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}
