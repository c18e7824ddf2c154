package article

import (
	"fmt"
	"strings"

	nethtml "golang.org/x/net/html"
)

func (r renderer) nodes(nodes []*nethtml.Node, depth int) []string {
	var lines []string
	var inline []string
	appendBlock := func(block []string) {
		if len(block) == 0 {
			return
		}
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}
	flush := func() {
		text := normalize(strings.Join(inline, " "))
		inline = inline[:0]
		if text != "" {
			appendBlock(wrapText(text, r.width))
		}
	}

	for _, n := range nodes {
		switch {
		case n.Type == nethtml.TextNode:
			inline = append(inline, n.Data)
		case n.Type == nethtml.ElementNode && isBlock(n.Data):
			flush()
			appendBlock(r.block(n, depth))
		case n.Type == nethtml.ElementNode:
			inline = append(inline, r.inline(n))
		}
	}
	flush()
	return trimBlankLines(lines)
}

func (r renderer) block(n *nethtml.Node, depth int) []string {
	tag := strings.ToLower(n.Data)
	switch tag {
	case "script", "style", "noscript", "head":
		return nil
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := normalize(r.inlineChildren(n))
		prefix := strings.Repeat("#", int(tag[1]-'0')) + " "
		return r.st.heading(wrapPrefixed(text, r.width, prefix, strings.Repeat(" ", len(prefix))))
	case "blockquote":
		inner := r.nodes(children(n), depth)
		out := make([]string, 0, len(inner))
		for _, line := range wrapLines(inner, r.width-2) {
			if strings.TrimSpace(line) == "" {
				out = append(out, "")
				continue
			}
			out = append(out, r.st.quote(line))
		}
		return out
	case "ul", "ol":
		return r.list(n, tag == "ol", depth+1)
	case "li":
		return r.listItem(n, depth, "- ")
	case "pre":
		var out []string
		for _, line := range strings.Split(strings.ReplaceAll(rawText(n), "\r\n", "\n"), "\n") {
			line = strings.TrimRight(line, " \t")
			if line == "" {
				out = append(out, "")
				continue
			}
			out = append(out, r.st.code("    "+line))
		}
		return trimBlankLines(out)
	case "hr":
		return []string{strings.Repeat("-", min(max(r.width, 3), 24))}
	case "img":
		alt := normalize(attr(n, "alt"))
		if alt == "" {
			alt = "image"
		}
		return []string{r.st.image("[" + alt + "]")}
	case "tr":
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == nethtml.ElementNode && (strings.EqualFold(c.Data, "td") || strings.EqualFold(c.Data, "th")) {
				cells = append(cells, normalize(r.inlineChildren(c)))
			}
		}
		return wrapText(strings.Join(cells, " | "), r.width)
	case "figcaption", "caption":
		return wrapPrefixed(normalize(r.inlineChildren(n)), r.width, "- ", "  ")
	default:
		if hasBlockChild(n) {
			return r.nodes(children(n), depth)
		}
		if text := normalize(r.inlineChildren(n)); text != "" {
			return wrapText(text, r.width)
		}
		return nil
	}
}

func (r renderer) list(n *nethtml.Node, ordered bool, depth int) []string {
	var lines []string
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != nethtml.ElementNode || !strings.EqualFold(c.Data, "li") {
			continue
		}
		count++
		marker := bullet(depth)
		if ordered {
			marker = fmt.Sprintf("%d. ", count)
		}
		lines = append(lines, r.listItem(c, depth, marker)...)
	}
	return lines
}

func (r renderer) listItem(n *nethtml.Node, depth int, marker string) []string {
	indent := strings.Repeat("  ", max(0, depth-1))
	var parts []string
	var nested []*nethtml.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode && (strings.EqualFold(c.Data, "ul") || strings.EqualFold(c.Data, "ol")) {
			nested = append(nested, c)
			continue
		}
		parts = append(parts, r.inline(c))
	}
	lines := wrapPrefixed(normalize(strings.Join(parts, " ")), r.width, indent+marker, indent+strings.Repeat(" ", runeLen(marker)))
	for _, c := range nested {
		lines = append(lines, r.list(c, strings.EqualFold(c.Data, "ol"), depth+1)...)
	}
	return lines
}

func bullet(depth int) string {
	switch depth {
	case 1:
		return "• "
	case 2:
		return "◦ "
	default:
		return "▪ "
	}
}

func isBlock(tag string) bool {
	switch strings.ToLower(tag) {
	case "h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "section", "article", "main", "header", "footer", "aside", "nav",
		"blockquote", "ul", "ol", "li", "pre", "hr", "img", "figure", "figcaption",
		"table", "thead", "tbody", "tfoot", "tr", "caption", "dl", "dt", "dd",
		"script", "style", "noscript":
		return true
	default:
		return false
	}
}

func hasBlockChild(n *nethtml.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode && isBlock(c.Data) {
			return true
		}
	}
	return false
}
