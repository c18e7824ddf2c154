package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	userAgent     = "Mozilla/5.0 (compatible; Feedr/1.0)"
	acceptHeader  = "application/rss+xml, application/atom+xml, application/xml, text/xml, */*"
	minBodyBytes  = 100
	sniffBytes    = 200
	maxRedirects  = 10
	maxBodyBytes  = 16 << 20
	defaultTitle  = "Untitled Feed"
	untitledEntry = "Untitled"
)

// FetchError reports a failed fetch or parse of one feed URL.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client loads feeds over HTTP.
type Client struct {
	http   *http.Client
	parser *gofeed.Parser
	nowFn  func() time.Time
}

func NewClient(timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return errors.New("stopped after 10 redirects")
				}
				return nil
			},
		}
	}
	return &Client{
		http:   httpClient,
		parser: gofeed.NewParser(),
		nowFn:  time.Now,
	}
}

// Fetch downloads and parses url.
func (c *Client) Fetch(ctx context.Context, url string) (Feed, error) {
	body, err := c.download(ctx, url)
	if err != nil {
		return Feed{}, &FetchError{URL: url, Err: err}
	}
	parsed, err := c.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return Feed{}, &FetchError{URL: url, Err: fmt.Errorf("parse feed (%d bytes): %w", len(body), err)}
	}
	return c.convert(url, parsed), nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) < minBodyBytes {
		return nil, fmt.Errorf("response too short (%d bytes), might be empty or an error page", len(body))
	}
	if looksLikeHTML(body) {
		return nil, fmt.Errorf("received HTML page instead of RSS/Atom feed (final URL: %s)", resp.Request.URL)
	}
	return body, nil
}

func looksLikeHTML(body []byte) bool {
	head := body
	if len(head) > sniffBytes {
		head = head[:sniffBytes]
	}
	trimmed := strings.TrimLeft(string(head), " \t\r\n\ufeff")
	return strings.HasPrefix(trimmed, "<!DOCTYPE html") || strings.HasPrefix(trimmed, "<html")
}

func (c *Client) convert(url string, parsed *gofeed.Feed) Feed {
	out := Feed{URL: url, Title: strings.TrimSpace(parsed.Title)}
	if out.Title == "" {
		out.Title = defaultTitle
	}
	now := c.nowFn()
	out.Items = make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if entry == nil {
			continue
		}
		out.Items = append(out.Items, convertItem(entry, now))
	}
	return out
}

func convertItem(entry *gofeed.Item, now time.Time) Item {
	item := Item{Title: strings.TrimSpace(entry.Title)}
	if item.Title == "" {
		item.Title = untitledEntry
	}

	switch {
	case entry.Link != "":
		item.Link = entry.Link
	case len(entry.Links) > 0:
		item.Link = entry.Links[0]
	}

	if entry.Content != "" {
		item.Description = entry.Content
	} else {
		item.Description = entry.Description
	}

	if person := firstAuthor(entry); person != nil {
		if person.Name != "" {
			item.Author = person.Name
		} else {
			item.Author = person.Email
		}
	}

	published := entry.PublishedParsed
	if published == nil {
		published = entry.UpdatedParsed
	}
	if published != nil {
		item.PubDate = published.UTC().Format(time.RFC3339)
		item.FormattedDate = RelativeLabel(*published, now)
	}
	return item
}

func firstAuthor(entry *gofeed.Item) *gofeed.Person {
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0]
	}
	return entry.Author
}
