// Package article turns HTML item descriptions into wrapped terminal lines.
package article

import (
	"html"
	"strings"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"
)

// Options controls how a description is rendered.
type Options struct {
	// Styled decorates headings, quotes, code and links with terminal colors.
	Styled bool
}

type renderer struct {
	width int
	st    styler
}

// Lines renders raw HTML wrapped to width.
func Lines(raw string, width int, opts Options) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	r := renderer{width: max(1, width), st: newStyler(opts.Styled)}

	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return wrapText(html.UnescapeString(raw), r.width)
	}
	body := findBody(doc)
	if body == nil {
		return wrapText(html.UnescapeString(raw), r.width)
	}
	lines := trimBlankLines(r.nodes(children(body), 0))
	for i, line := range lines {
		lines[i] = codeMarkers.Replace(line)
	}
	return lines
}

// PlainText renders raw HTML without markup or colors, wrapped to width.
func PlainText(raw string, width int) string {
	return strings.Join(Lines(raw, width, Options{}), "\n")
}

func findBody(n *nethtml.Node) *nethtml.Node {
	if n == nil {
		return nil
	}
	if n.Type == nethtml.ElementNode && strings.EqualFold(n.Data, "body") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// children skips whitespace-only text nodes.
func children(n *nethtml.Node) []*nethtml.Node {
	var out []*nethtml.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func rawText(n *nethtml.Node) string {
	if n.Type == nethtml.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(rawText(c))
	}
	return b.String()
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s) - strings.Count(s, codeStart) - strings.Count(s, codeEnd)
}
