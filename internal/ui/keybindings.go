package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/paperless-mail/internal/tags"
)

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

func isSpace(msg tea.KeyMsg) bool {
	return isKey(msg, " ", "space")
}

func isNext(msg tea.KeyMsg) bool {
	return isKey(msg, "tab")
}

func isPrev(msg tea.KeyMsg) bool {
	return isKey(msg, "shift+tab")
}

func isSubmit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+s")
}

// suggestionShortcut maps alt+1..alt+5 to a suggestion index.
func suggestionShortcut(msg tea.KeyMsg) (int, bool) {
	switch {
	case isKey(msg, "alt+1"):
		return 0, true
	case isKey(msg, "alt+2"):
		return 1, true
	case isKey(msg, "alt+3"):
		return 2, true
	case isKey(msg, "alt+4"):
		return 3, true
	case isKey(msg, "alt+5"):
		return 4, true
	}
	return -1, false
}

// controllerKey maps the keys the tag autocomplete reacts to.
func controllerKey(msg tea.KeyMsg) (tags.Key, bool) {
	switch {
	case isEnter(msg):
		return tags.KeyEnter, true
	case isKey(msg, "backspace"):
		return tags.KeyBackspace, true
	case isUp(msg):
		return tags.KeyArrowUp, true
	case isDown(msg):
		return tags.KeyArrowDown, true
	case isBack(msg):
		return tags.KeyEscape, true
	}
	return 0, false
}
