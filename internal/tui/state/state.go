package state

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// MoveCursor steps the cursor by delta and keeps it inside [0, size).
func MoveCursor(cursor, delta, size int) int {
	return ClampCursor(cursor+delta, size)
}

// BodyHeight is the number of rows left for content once the header and
// footer chrome are drawn. extra reserves one more row for a filter bar or
// input prompt.
func BodyHeight(height int, extra bool) int {
	if height <= 0 {
		return 20
	}
	chrome := 5
	if extra {
		chrome++
	}
	body := height - chrome
	if body < 3 {
		body = 3
	}
	return body
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

const DetailPageStep = 10

// Scroll tracks the detail view offset. Max is recomputed from the rendered
// content every time the view is drawn or resized.
type Scroll struct {
	Offset int
	Max    int
}

func MaxScroll(totalLines, height int) int {
	if totalLines <= height {
		return 0
	}
	return totalLines - height
}

func (s Scroll) WithMax(max int) Scroll {
	if max < 0 {
		max = 0
	}
	s.Max = max
	if s.Offset > max {
		s.Offset = max
	}
	return s
}

func (s Scroll) By(delta int) Scroll {
	s.Offset += delta
	if s.Offset < 0 {
		s.Offset = 0
	}
	if s.Offset > s.Max {
		s.Offset = s.Max
	}
	return s
}

func (s Scroll) Top() Scroll {
	s.Offset = 0
	return s
}

func (s Scroll) Bottom() Scroll {
	s.Offset = s.Max
	return s
}
