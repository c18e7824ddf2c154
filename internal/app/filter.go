package app

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/glabrego/feedr/internal/feed"
	"github.com/glabrego/feedr/internal/render/article"
)

// MinLengthWrapWidth is the wrap width used to measure description length.
const MinLengthWrapWidth = 80

type TimeFilter int

const (
	AnyAge TimeFilter = iota
	Today
	ThisWeek
	ThisMonth
	Older
)

func (t TimeFilter) String() string {
	switch t {
	case Today:
		return "Today"
	case ThisWeek:
		return "This Week"
	case ThisMonth:
		return "This Month"
	case Older:
		return "Older than a month"
	default:
		return "Any"
	}
}

// Next cycles Any, Today, ThisWeek, ThisMonth, Older and back to Any.
func (t TimeFilter) Next() TimeFilter {
	if t >= Older {
		return AnyAge
	}
	return t + 1
}

func (t TimeFilter) allows(age time.Duration) bool {
	const day = 24 * time.Hour
	switch t {
	case Today:
		return age <= day
	case ThisWeek:
		return age <= 7*day
	case ThisMonth:
		return age <= 30*day
	case Older:
		return age > 30*day
	default:
		return true
	}
}

// FilterOptions holds independent facets combined with AND. Empty Category,
// AnyAge and nil pointers mean the facet is unset.
type FilterOptions struct {
	Category   string
	Age        TimeFilter
	HasAuthor  *bool
	ReadStatus *bool
	MinLength  *int
}

func (o FilterOptions) IsActive() bool {
	return o.ActiveCount() > 0
}

func (o FilterOptions) ActiveCount() int {
	n := 0
	if o.Category != "" {
		n++
	}
	if o.Age != AnyAge {
		n++
	}
	if o.HasAuthor != nil {
		n++
	}
	if o.ReadStatus != nil {
		n++
	}
	if o.MinLength != nil {
		n++
	}
	return n
}

// Matches reports whether item of f passes every set facet.
func (o FilterOptions) Matches(f feed.Feed, item feed.Item, read ReadSet, now time.Time) bool {
	if !o.IsActive() {
		return true
	}
	if o.Category != "" && !strings.Contains(CategoryLabel(f.URL), o.Category) {
		return false
	}
	if o.Age != AnyAge {
		at, ok := feed.ParseDate(item.PubDate)
		if !ok || !o.Age.allows(now.Sub(at)) {
			return false
		}
	}
	if o.HasAuthor != nil && *o.HasAuthor != (item.Author != "") {
		return false
	}
	if o.ReadStatus != nil && *o.ReadStatus != read.Contains(ItemKey(f.URL, item)) {
		return false
	}
	if o.MinLength != nil {
		if item.Description == "" {
			return false
		}
		text := article.PlainText(item.Description, MinLengthWrapWidth)
		if utf8.RuneCountInString(text) < *o.MinLength {
			return false
		}
	}
	return true
}

// Summary renders the set facets for the status line.
func (o FilterOptions) Summary() string {
	var parts []string
	if o.Category != "" {
		parts = append(parts, "Category: "+o.Category)
	}
	if o.Age != AnyAge {
		parts = append(parts, "Age: "+o.Age.String())
	}
	if o.HasAuthor != nil {
		parts = append(parts, "Author: "+pick(*o.HasAuthor, "With author", "No author"))
	}
	if o.ReadStatus != nil {
		parts = append(parts, "Status: "+pick(*o.ReadStatus, "Read", "Unread"))
	}
	if o.MinLength != nil {
		parts = append(parts, "Length: "+lengthLabel(*o.MinLength))
	}
	if len(parts) == 0 {
		return "No filters active"
	}
	return strings.Join(parts, " | ")
}

func lengthLabel(n int) string {
	switch n {
	case 100:
		return "Short"
	case 500:
		return "Medium"
	case 1000:
		return "Long"
	default:
		return "Custom"
	}
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// CycleTriState steps nil, true, false and back to nil.
func CycleTriState(v *bool) *bool {
	switch {
	case v == nil:
		return boolPtr(true)
	case *v:
		return boolPtr(false)
	default:
		return nil
	}
}

// CycleMinLength steps nil, 100, 500, 1000 and back to nil.
func CycleMinLength(v *int) *int {
	switch {
	case v == nil:
		return intPtr(100)
	case *v == 100:
		return intPtr(500)
	case *v == 500:
		return intPtr(1000)
	default:
		return nil
	}
}

// CycleCategory moves to the next entry of choices, wrapping to unset after
// the last one. An unknown current value restarts at the first choice.
func CycleCategory(current string, choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	if current == "" {
		return choices[0]
	}
	for i, c := range choices {
		if c == current {
			if i == len(choices)-1 {
				return ""
			}
			return choices[i+1]
		}
	}
	return choices[0]
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }

func (s *Service) Filter() FilterOptions { return s.filter }

// SetFilter replaces the facets and rebuilds the filtered dashboard.
func (s *Service) SetFilter(o FilterOptions) {
	s.filter = o
	s.applyFilters()
}

func (s *Service) ResetFilters() {
	s.SetFilter(FilterOptions{})
}

func (s *Service) FilterSummary() string { return s.filter.Summary() }

// FilterStats returns the number of set facets, the number of items shown
// and the number they were chosen from.
func (s *Service) FilterStats() (active, shown, total int) {
	active = s.filter.ActiveCount()
	if s.searching {
		return active, len(s.searchResults), len(s.searchResults)
	}
	return active, len(s.filtered), len(s.dashboard)
}

func (s *Service) applyFilters() {
	if !s.filter.IsActive() {
		s.filtered = append([]ItemRef(nil), s.dashboard...)
		return
	}
	now := s.nowFn()
	out := make([]ItemRef, 0, len(s.dashboard))
	for _, ref := range s.dashboard {
		f, item, ok := s.Item(ref)
		if ok && s.filter.Matches(f, item, s.read, now) {
			out = append(out, ref)
		}
	}
	s.filtered = out
}
