package dialog

import (
	"github.com/dustin/go-humanize"

	"github.com/gravitrone/paperless-mail/internal/mail"
)

// AttachmentRow is the view model of one attachment checkbox.
type AttachmentRow struct {
	Index   int
	Name    string
	Size    string
	Icon    string
	Checked bool
}

// AttachmentList tracks which attachments are checked. Check state is kept
// by original position; the attachments themselves are never modified.
type AttachmentList struct {
	items   []mail.Attachment
	checked []bool
}

// NewAttachmentList returns a list with every attachment checked.
func NewAttachmentList(items []mail.Attachment) *AttachmentList {
	l := &AttachmentList{
		items:   append([]mail.Attachment(nil), items...),
		checked: make([]bool, len(items)),
	}
	l.SelectAll()
	return l
}

func (l *AttachmentList) Len() int {
	return len(l.items)
}

// Items returns every attachment in original order.
func (l *AttachmentList) Items() []mail.Attachment {
	return append([]mail.Attachment(nil), l.items...)
}

// SetChecked sets row i. It reports false when i is out of range.
func (l *AttachmentList) SetChecked(i int, checked bool) bool {
	if i < 0 || i >= len(l.checked) {
		return false
	}
	l.checked[i] = checked
	return true
}

// Toggle flips row i.
func (l *AttachmentList) Toggle(i int) bool {
	if i < 0 || i >= len(l.checked) {
		return false
	}
	l.checked[i] = !l.checked[i]
	return true
}

func (l *AttachmentList) IsChecked(i int) bool {
	return i >= 0 && i < len(l.checked) && l.checked[i]
}

func (l *AttachmentList) SelectAll() {
	for i := range l.checked {
		l.checked[i] = true
	}
}

func (l *AttachmentList) SelectNone() {
	for i := range l.checked {
		l.checked[i] = false
	}
}

// CheckedCount returns how many rows are checked.
func (l *AttachmentList) CheckedCount() int {
	n := 0
	for _, c := range l.checked {
		if c {
			n++
		}
	}
	return n
}

// Selected returns the checked attachments in original order.
func (l *AttachmentList) Selected() []mail.Attachment {
	out := make([]mail.Attachment, 0, len(l.items))
	for i, item := range l.items {
		if l.checked[i] {
			out = append(out, item)
		}
	}
	return out
}

// Rows returns the view models for every attachment.
func (l *AttachmentList) Rows() []AttachmentRow {
	rows := make([]AttachmentRow, len(l.items))
	for i, item := range l.items {
		size := item.Size
		if size == 0 {
			size = int64(len(item.Content))
		}
		rows[i] = AttachmentRow{
			Index:   i,
			Name:    item.Name,
			Size:    humanize.Bytes(uint64(max(size, 0))),
			Icon:    mail.Icon(item.Name, item.ContentType),
			Checked: l.checked[i],
		}
	}
	return rows
}
