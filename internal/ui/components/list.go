package components

// List is a cursor over a fixed number of rows with a scrolling window.
type List struct {
	Len      int
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list with the given page size.
func NewList(pageSize int) *List {
	if pageSize < 1 {
		pageSize = 1
	}
	return &List{PageSize: pageSize}
}

// SetLen replaces the row count and resets the cursor.
func (l *List) SetLen(n int) {
	l.Len = n
	l.Cursor = 0
	l.Offset = 0
}

// Down moves the cursor down.
func (l *List) Down() {
	if l.Cursor < l.Len-1 {
		l.Cursor++
		if l.Cursor >= l.Offset+l.PageSize {
			l.Offset++
		}
	}
}

// Up moves the cursor up.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		if l.Cursor < l.Offset {
			l.Offset--
		}
	}
}

// Window returns the half-open range of visible rows.
func (l *List) Window() (start, end int) {
	if l.Len == 0 {
		return 0, 0
	}
	end = l.Offset + l.PageSize
	if end > l.Len {
		end = l.Len
	}
	return l.Offset, end
}

// Selected returns the index of the selected row.
func (l *List) Selected() int {
	return l.Cursor
}

// VisibleCursor returns the cursor position inside the window.
func (l *List) VisibleCursor() int {
	return l.Cursor - l.Offset
}
