package article

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
)

// Code spans are fenced with private-use runes while a paragraph is
// assembled so normalize leaves their text alone. Lines strips them.
const (
	codeStart = "\uE000"
	codeEnd   = "\uE001"
)

var codeMarkers = strings.NewReplacer(codeStart, "", codeEnd, "")

var punctuationSpacing = strings.NewReplacer(
	" .", ".",
	" ,", ",",
	" ;", ";",
	" :", ":",
	" !", "!",
	" ?", "?",
	" )", ")",
	"( ", "(",
)

func (r renderer) inlineChildren(n *nethtml.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = append(parts, r.inline(c))
	}
	return strings.Join(parts, " ")
}

func (r renderer) inline(n *nethtml.Node) string {
	switch n.Type {
	case nethtml.TextNode:
		return n.Data
	case nethtml.ElementNode:
	default:
		return ""
	}

	switch strings.ToLower(n.Data) {
	case "script", "style", "noscript", "img":
		return ""
	case "br":
		return "\n"
	case "a":
		text := normalize(r.inlineChildren(n))
		href := attr(n, "href")
		switch {
		case href == "" || strings.EqualFold(text, href):
			return text
		case text == "":
			return r.st.link(href)
		default:
			return text + " " + r.st.link("("+href+")")
		}
	case "code", "kbd", "samp":
		if text := strings.Join(strings.Fields(r.inlineChildren(n)), " "); text != "" {
			return codeStart + r.st.code("`"+text+"`") + codeEnd
		}
		return ""
	case "q":
		if text := normalize(r.inlineChildren(n)); text != "" {
			return `"` + text + `"`
		}
		return ""
	default:
		return r.inlineChildren(n)
	}
}

// normalize unescapes entities, collapses runs of whitespace and drops
// spaces before punctuation. Explicit line breaks survive, and code spans
// are only whitespace-collapsed.
func normalize(s string) string {
	s = outsideCode(s, html.UnescapeString)
	var kept []string
	for _, part := range strings.Split(s, "\n") {
		if part = strings.Join(strings.Fields(part), " "); part != "" {
			kept = append(kept, part)
		}
	}
	return outsideCode(strings.Join(kept, "\n"), punctuationSpacing.Replace)
}

// outsideCode applies fn to the text between code spans.
func outsideCode(s string, fn func(string) string) string {
	if !strings.Contains(s, codeStart) {
		return fn(s)
	}
	var b strings.Builder
	for s != "" {
		i := strings.Index(s, codeStart)
		if i < 0 {
			b.WriteString(fn(s))
			break
		}
		j := strings.Index(s[i:], codeEnd)
		if j < 0 {
			b.WriteString(fn(s))
			break
		}
		j += i + len(codeEnd)
		b.WriteString(fn(s[:i]))
		b.WriteString(s[i:j])
		s = s[j:]
	}
	return b.String()
}
