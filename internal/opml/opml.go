// Package opml reads and writes subscription lists in OPML.
package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

type document struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    head     `xml:"head"`
	Body    body     `xml:"body"`
}

type head struct {
	Title       string `xml:"title,omitempty"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

type body struct {
	Outlines []outline `xml:"outline"`
}

type outline struct {
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Outlines []outline `xml:"outline,omitempty"`
}

// Subscription is one feed outline with the folders enclosing it.
type Subscription struct {
	Folders []string
	Title   string
	URL     string
}

// Folder returns the outermost folder name, or "" for top-level feeds.
func (s Subscription) Folder() string {
	if len(s.Folders) == 0 {
		return ""
	}
	return s.Folders[0]
}

// Parse flattens every feed outline of an OPML document in document order.
func Parse(r io.Reader) ([]Subscription, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode opml: %w", err)
	}
	var subs []Subscription
	var walk func(nodes []outline, folders []string)
	walk = func(nodes []outline, folders []string) {
		for _, n := range nodes {
			url := strings.TrimSpace(n.XMLURL)
			if url != "" {
				subs = append(subs, Subscription{
					Folders: append([]string(nil), folders...),
					Title:   firstNonEmpty(n.Title, n.Text),
					URL:     url,
				})
				continue
			}
			if len(n.Outlines) > 0 {
				name := strings.TrimSpace(firstNonEmpty(n.Text, n.Title))
				next := folders[:len(folders):len(folders)]
				if name != "" {
					next = append(next, name)
				}
				walk(n.Outlines, next)
			}
		}
	}
	walk(doc.Body.Outlines, nil)
	return subs, nil
}

// Write renders subs as an OPML 2.0 document, grouping them by outermost
// folder in first-seen order.
func Write(w io.Writer, title string, subs []Subscription, now time.Time) error {
	doc := document{
		Version: "2.0",
		Head:    head{Title: title, DateCreated: now.Format(time.RFC1123Z)},
	}
	folderIndex := map[string]int{}
	for _, s := range subs {
		node := outline{Text: s.Title, Title: s.Title, Type: "rss", XMLURL: s.URL}
		folder := s.Folder()
		if folder == "" {
			doc.Body.Outlines = append(doc.Body.Outlines, node)
			continue
		}
		i, ok := folderIndex[folder]
		if !ok {
			doc.Body.Outlines = append(doc.Body.Outlines, outline{Text: folder, Title: folder})
			i = len(doc.Body.Outlines) - 1
			folderIndex[folder] = i
		}
		doc.Body.Outlines[i].Outlines = append(doc.Body.Outlines[i].Outlines, node)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write opml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode opml: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
