package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListNewList(t *testing.T) {
	list := NewList(10)
	assert.Equal(t, 10, list.PageSize)
	assert.Equal(t, 0, list.Cursor)
	assert.Equal(t, 0, list.Offset)
	assert.Equal(t, 1, NewList(0).PageSize)
}

func TestListSetLenResetsCursor(t *testing.T) {
	list := NewList(2)
	list.SetLen(5)
	list.Down()
	list.Down()

	list.SetLen(3)
	assert.Equal(t, 3, list.Len)
	assert.Equal(t, 0, list.Cursor)
	assert.Equal(t, 0, list.Offset)
}

func TestListDownMovement(t *testing.T) {
	list := NewList(3)
	list.SetLen(5)

	list.Down()
	list.Down()
	assert.Equal(t, 2, list.Cursor)
	assert.Equal(t, 0, list.Offset)

	// Past the page, the window scrolls.
	list.Down()
	assert.Equal(t, 3, list.Cursor)
	assert.Equal(t, 1, list.Offset)

	list.Down()
	list.Down()
	assert.Equal(t, 4, list.Cursor)
	assert.Equal(t, 2, list.Offset)
}

func TestListUpMovement(t *testing.T) {
	list := NewList(2)
	list.SetLen(4)
	for i := 0; i < 3; i++ {
		list.Down()
	}
	assert.Equal(t, 2, list.Offset)

	list.Up()
	list.Up()
	assert.Equal(t, 1, list.Cursor)
	assert.Equal(t, 1, list.Offset)

	list.Up()
	list.Up()
	assert.Equal(t, 0, list.Cursor)
	assert.Equal(t, 0, list.Offset)
}

func TestListWindow(t *testing.T) {
	list := NewList(3)
	start, end := list.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)

	list.SetLen(2)
	start, end = list.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	list.SetLen(6)
	for i := 0; i < 4; i++ {
		list.Down()
	}
	start, end = list.Window()
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)
	assert.Equal(t, 2, list.VisibleCursor())
	assert.Equal(t, 4, list.Selected())
}

func TestListEmptyMovementIsNoop(t *testing.T) {
	list := NewList(3)
	list.Down()
	list.Up()
	assert.Equal(t, 0, list.Cursor)
}
