package ui

import (
	"github.com/gravitrone/paperless-mail/internal/dialog"
	"github.com/gravitrone/paperless-mail/internal/tags"
)

// viewState receives render calls from the session. The model reads it
// when drawing and applies input and focus requests after each event.
type viewState struct {
	chips          []string
	suggestions    []tags.Suggestion
	highlighted    int
	rows           []dialog.AttachmentRow
	correspondents []dialog.Option
	documentTypes  []dialog.Option
	submitEnabled  bool
	errText        string
	successText    string

	pendingInput *string
	focusTags    bool
}

func newViewState() *viewState {
	return &viewState{highlighted: -1}
}

func (v *viewState) RenderChips(names []string) {
	v.chips = names
}

func (v *viewState) RenderSuggestions(items []tags.Suggestion, highlighted int) {
	v.suggestions = items
	v.highlighted = highlighted
}

func (v *viewState) SetInput(text string) {
	v.pendingInput = &text
}

func (v *viewState) FocusInput() {
	v.focusTags = true
}

func (v *viewState) RenderAttachments(rows []dialog.AttachmentRow) {
	v.rows = rows
}

func (v *viewState) RenderOptions(correspondents, documentTypes []dialog.Option) {
	v.correspondents = correspondents
	v.documentTypes = documentTypes
}

func (v *viewState) SetSubmitEnabled(enabled bool) {
	v.submitEnabled = enabled
}

func (v *viewState) ShowError(msg string) {
	v.successText = ""
	v.errText = msg
}

func (v *viewState) ShowSuccess(msg string) {
	v.errText = ""
	v.successText = msg
}
