package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/paperless-mail/internal/dialog"
	"github.com/gravitrone/paperless-mail/internal/i18n"
	"github.com/gravitrone/paperless-mail/internal/mail"
	"github.com/gravitrone/paperless-mail/internal/tags"
	"github.com/gravitrone/paperless-mail/internal/ui/components"
	"github.com/gravitrone/paperless-mail/internal/upload"
)

// closeDelay is how long the success message stays before the dialog quits.
const closeDelay = 2 * time.Second

const (
	defaultWidth        = 100
	attachmentPageSize  = 8
	titleCharLimit      = 128
	tagInputCharLimit   = 64
	defaultTagNameLabel = "Paperless"
)

// --- Messages ---

type catalogLoadedMsg struct{ catalog dialog.Catalog }
type submitDoneMsg struct {
	result upload.Result
	err    error
}
type closeDialogMsg struct{}

// --- Focus ---

type focusField int

const (
	fieldTitle focusField = iota
	fieldCorrespondent
	fieldDocumentType
	fieldTags
	fieldAttachments
	fieldDefaultTag
	fieldSubmit
	fieldCancel
	fieldCount
)

// DialogDeps are the collaborators of the dialog model. Catalog and
// Transport may be nil; the dialog then skips loading or refuses to send.
type DialogDeps struct {
	Context        context.Context
	Catalog        dialog.CatalogSource
	Transport      upload.Transport
	Printer        *i18n.Printer
	Logger         *slog.Logger
	Threshold      float64
	AddDefaultTag  bool
	DefaultTagName string
}

// DialogModel is the upload dialog.
type DialogModel struct {
	ctx     context.Context
	deps    DialogDeps
	printer *i18n.Printer

	session      *dialog.Session
	view         *viewState
	initialTitle string
	fatal        string

	titleInput textinput.Model
	tagInput   textinput.Model
	focus      focusField

	correspondentIdx int
	documentTypeIdx  int
	chipIdx          int
	taskIDs          []string
	attachments      *components.List

	loading     bool
	done        bool
	quitConfirm bool
	quitting    bool
	width       int
	height      int
}

// NewDialogModel opens a session for payload. loadErr is the error from
// loading the payload, if any; the dialog then only shows it.
func NewDialogModel(payload *mail.Payload, loadErr error, deps DialogDeps) DialogModel {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Printer == nil {
		deps.Printer = i18n.New("")
	}
	if deps.DefaultTagName == "" {
		deps.DefaultTagName = defaultTagNameLabel
	}

	m := DialogModel{
		ctx:         deps.Context,
		deps:        deps,
		printer:     deps.Printer,
		view:        newViewState(),
		attachments: components.NewList(attachmentPageSize),
		chipIdx:     -1,
	}

	if loadErr != nil && !errors.Is(loadErr, mail.ErrNoSessionData) {
		m.fatal = m.printer.Sprintf(i18n.MsgLoadFailed, loadErr.Error())
		return m
	}
	if loadErr != nil {
		payload = nil
	}

	session, err := dialog.Open(payload, m.view, dialog.Config{
		Printer:       deps.Printer,
		Logger:        deps.Logger,
		Threshold:     deps.Threshold,
		AddDefaultTag: deps.AddDefaultTag,
	})
	if err != nil {
		m.fatal = m.view.errText
		m.view.errText = ""
		return m
	}
	m.session = session
	m.initialTitle = session.Title()
	m.attachments.SetLen(session.Attachments.Len())
	m.loading = deps.Catalog != nil

	m.titleInput = textinput.New()
	m.titleInput.Prompt = ""
	m.titleInput.CharLimit = titleCharLimit
	m.titleInput.SetValue(session.Title())
	m.titleInput.CursorEnd()
	m.titleInput.Focus()

	m.tagInput = textinput.New()
	m.tagInput.Prompt = "> "
	m.tagInput.Placeholder = m.printer.T(i18n.MsgTagPlaceholder)
	m.tagInput.CharLimit = tagInputCharLimit
	return m
}

func (m DialogModel) Init() tea.Cmd {
	if m.session == nil {
		return nil
	}
	cmds := []tea.Cmd{textinput.Blink}
	if m.deps.Catalog != nil {
		cmds = append(cmds, m.fetchCatalogCmd())
	}
	return tea.Batch(cmds...)
}

func (m DialogModel) fetchCatalogCmd() tea.Cmd {
	ctx, src, logger := m.ctx, m.deps.Catalog, m.deps.Logger
	return func() tea.Msg {
		return catalogLoadedMsg{catalog: dialog.FetchCatalog(ctx, src, logger)}
	}
}

func (m DialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case catalogLoadedMsg:
		m.loading = false
		if m.session != nil {
			m.session.ApplyCatalog(msg.catalog)
			m.correspondentIdx = 0
			m.documentTypeIdx = 0
			m.applyViewRequests()
		}
		return m, nil

	case submitDoneMsg:
		if m.session == nil {
			return m, nil
		}
		if err := m.session.FinishSubmit(msg.result, msg.err); err != nil {
			return m, nil
		}
		m.done = true
		m.taskIDs = msg.result.TaskIDs
		return m, tea.Tick(closeDelay, func(time.Time) tea.Msg {
			return closeDialogMsg{}
		})

	case closeDialogMsg:
		return m.quit()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.session == nil {
		return m, nil
	}
	// Cursor blink and other input internals.
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case fieldTags:
		m.tagInput, cmd = m.tagInput.Update(msg)
	}
	return m, cmd
}

func (m DialogModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		return m.quit()
	}
	if m.fatal != "" || m.session == nil {
		return m.quit()
	}
	if m.done {
		return m, nil
	}
	if m.quitConfirm {
		switch {
		case isKey(msg, "y"):
			return m.quit()
		case isKey(msg, "n"), isBack(msg):
			m.quitConfirm = false
		}
		return m, nil
	}
	if m.view.errText != "" {
		m.view.errText = ""
	}

	switch {
	case isSubmit(msg):
		return m.submit()
	case isNext(msg):
		return m.moveFocus(1)
	case isPrev(msg):
		return m.moveFocus(-1)
	}

	switch m.focus {
	case fieldTitle:
		return m.handleTitleKeys(msg)
	case fieldCorrespondent, fieldDocumentType:
		return m.handleSelectorKeys(msg)
	case fieldTags:
		return m.handleTagKeys(msg)
	case fieldAttachments:
		return m.handleAttachmentKeys(msg)
	case fieldDefaultTag:
		if isSpace(msg) || isEnter(msg) {
			m.session.SetAddDefaultTag(!m.session.AddDefaultTag())
			return m, nil
		}
	case fieldSubmit:
		if isSpace(msg) || isEnter(msg) {
			return m.submit()
		}
	case fieldCancel:
		if isSpace(msg) || isEnter(msg) {
			return m.cancel()
		}
	}
	if isBack(msg) {
		return m.cancel()
	}
	return m, nil
}

func (m DialogModel) handleTitleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isEnter(msg):
		return m.moveFocus(1)
	case isBack(msg):
		return m.cancel()
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	m.session.SetTitle(m.titleInput.Value())
	return m, cmd
}

func (m DialogModel) handleSelectorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isKey(msg, "left"):
		m.cycleOption(-1)
	case isKey(msg, "right"):
		m.cycleOption(1)
	case isEnter(msg):
		return m.moveFocus(1)
	case isBack(msg):
		return m.cancel()
	}
	return m, nil
}

// cycleOption moves the focused selector. Index 0 is "none".
func (m *DialogModel) cycleOption(delta int) {
	if m.focus == fieldCorrespondent {
		options := m.session.Correspondents()
		m.correspondentIdx = wrapIndex(m.correspondentIdx+delta, len(options)+1)
		m.session.SetCorrespondent(optionID(options, m.correspondentIdx))
		return
	}
	options := m.session.DocumentTypes()
	m.documentTypeIdx = wrapIndex(m.documentTypeIdx+delta, len(options)+1)
	m.session.SetDocumentType(optionID(options, m.documentTypeIdx))
}

func (m DialogModel) handleTagKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.session.Tags
	if m.tagInput.Value() == "" && m.handleChipKeys(msg) {
		return m, nil
	}
	m.chipIdx = -1
	if i, ok := suggestionShortcut(msg); ok {
		c.ClickSuggestion(i)
		m.applyViewRequests()
		return m, nil
	}
	if key, ok := controllerKey(msg); ok {
		if c.KeyDown(key) {
			m.applyViewRequests()
			return m, nil
		}
		switch key {
		case tags.KeyEscape:
			return m.cancel()
		case tags.KeyArrowUp, tags.KeyArrowDown:
			return m, nil
		}
	}

	before := m.tagInput.Value()
	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	if value := m.tagInput.Value(); value != before {
		c.InputChanged(value)
		m.applyViewRequests()
	}
	return m, cmd
}

// handleChipKeys moves the chip cursor with left/right while the tag input is
// empty. Delete or backspace removes the chip under the cursor.
func (m *DialogModel) handleChipKeys(msg tea.KeyMsg) bool {
	chips := m.session.Tags.Selected()
	if len(chips) == 0 {
		m.chipIdx = -1
		return false
	}
	switch {
	case isKey(msg, "left"):
		if m.chipIdx < 0 {
			m.chipIdx = len(chips) - 1
		} else if m.chipIdx > 0 {
			m.chipIdx--
		}
		return true
	case isKey(msg, "right"):
		if m.chipIdx < 0 {
			return false
		}
		m.chipIdx++
		if m.chipIdx >= len(chips) {
			m.chipIdx = -1
		}
		return true
	case isKey(msg, "delete", "backspace"):
		if m.chipIdx < 0 || m.chipIdx >= len(chips) {
			return false
		}
		m.session.Tags.Remove(chips[m.chipIdx])
		if left := len(chips) - 1; m.chipIdx >= left {
			m.chipIdx = left - 1
		}
		return true
	}
	return false
}

func (m DialogModel) handleAttachmentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isUp(msg):
		m.attachments.Up()
	case isDown(msg):
		m.attachments.Down()
	case isSpace(msg):
		m.session.ToggleAttachment(m.attachments.Selected())
	case isKey(msg, "a"):
		m.session.SelectAllAttachments()
	case isKey(msg, "n"):
		m.session.SelectNoAttachments()
	case isEnter(msg):
		return m.moveFocus(1)
	case isBack(msg):
		return m.cancel()
	}
	return m, nil
}

// moveFocus steps through the fields, skipping the attachment list when
// there is nothing in it. Leaving the tag input blurs the autocomplete.
func (m DialogModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	next := m.focus
	for {
		next = focusField(wrapIndex(int(next)+delta, int(fieldCount)))
		if next != fieldAttachments || m.session.Attachments.Len() > 0 {
			break
		}
	}
	return m.setFocus(next)
}

func (m DialogModel) setFocus(field focusField) (tea.Model, tea.Cmd) {
	if m.focus == field {
		return m, nil
	}
	switch m.focus {
	case fieldTitle:
		m.titleInput.Blur()
	case fieldTags:
		m.session.Tags.Blur()
		m.tagInput.Blur()
		m.chipIdx = -1
	}
	m.focus = field

	var cmd tea.Cmd
	switch field {
	case fieldTitle:
		cmd = m.titleInput.Focus()
	case fieldTags:
		m.session.Tags.Focus()
		cmd = m.tagInput.Focus()
	}
	return m, cmd
}

// applyViewRequests syncs the tag input with what the controller asked for.
func (m *DialogModel) applyViewRequests() {
	if m.view.pendingInput != nil {
		m.tagInput.SetValue(*m.view.pendingInput)
		m.tagInput.CursorEnd()
		m.view.pendingInput = nil
	}
	if m.view.focusTags {
		m.view.focusTags = false
		if m.focus != fieldTags {
			m.titleInput.Blur()
			m.focus = fieldTags
			m.session.Tags.Focus()
			m.tagInput.Focus()
		}
	}
}

func (m DialogModel) submit() (tea.Model, tea.Cmd) {
	req, ok := m.session.BeginSubmit()
	if !ok {
		return m, nil
	}
	ctx, transport := m.ctx, m.deps.Transport
	return m, func() tea.Msg {
		if transport == nil {
			return submitDoneMsg{err: dialog.ErrNoTransport}
		}
		res, err := transport.Upload(ctx, req)
		return submitDoneMsg{result: res, err: err}
	}
}

func (m DialogModel) cancel() (tea.Model, tea.Cmd) {
	if m.dirty() {
		m.quitConfirm = true
		return m, nil
	}
	return m.quit()
}

// dirty reports whether closing would discard user input.
func (m DialogModel) dirty() bool {
	if m.session == nil {
		return false
	}
	return m.session.Title() != m.initialTitle ||
		len(m.session.Tags.Selected()) > 0 ||
		m.session.Correspondent() != nil ||
		m.session.DocumentType() != nil
}

func (m DialogModel) quit() (tea.Model, tea.Cmd) {
	if m.session != nil {
		m.session.Close()
	}
	m.quitting = true
	return m, tea.Quit
}

// --- Rendering ---

func (m DialogModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.renderWidth()
	if m.fatal != "" {
		body := m.fatal + "\n\n" + MutedStyle.Render(m.printer.T(i18n.MsgCloseHint))
		return "\n" + components.ErrorBox(m.printer.T(i18n.MsgErrorTitle), body, width) + "\n"
	}
	if m.quitConfirm {
		return "\n" + components.ConfirmDialog(
			m.printer.T(i18n.MsgDiscardTitle),
			m.printer.T(i18n.MsgDiscardBody),
			m.printer.T(i18n.MsgConfirmHint),
		) + "\n"
	}

	sections := []string{
		RenderBanner(m.printer.T(i18n.MsgDialogTitle)),
		m.renderPreview(width),
		components.Box(m.renderForm(), width),
		m.renderAttachments(width),
		m.renderActions(),
		components.StatusBar(m.statusHints(), width),
	}
	out := strings.Join(sections, "\n\n")

	if m.view.errText != "" {
		out += "\n\n" + components.ErrorBox(m.printer.T(i18n.MsgErrorTitle), m.view.errText, width)
	} else if m.view.successText != "" {
		body := m.view.successText
		if len(m.taskIDs) > 0 {
			body += "\n\n" + components.InfoRow(m.printer.T(i18n.MsgTaskIDs), strings.Join(m.taskIDs, ", "))
		}
		out += "\n\n" + components.SuccessBox(m.printer.T(i18n.MsgSuccessTitle), body, width)
	}
	return out + "\n"
}

func (m DialogModel) renderWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m DialogModel) renderPreview(width int) string {
	p := m.session.Preview()
	rows := []components.TableRow{
		{Label: m.printer.T(i18n.MsgFrom), Value: p.From},
		{Label: m.printer.T(i18n.MsgTo), Value: p.To},
		{Label: m.printer.T(i18n.MsgSubject), Value: p.Subject},
	}
	if p.Date != "" {
		rows = append(rows, components.TableRow{Label: m.printer.T(i18n.MsgDate), Value: p.Date})
	}
	return components.Table(m.printer.T(i18n.MsgEmail), rows, width)
}

func (m DialogModel) renderForm() string {
	var b strings.Builder

	b.WriteString(m.label(fieldTitle, i18n.MsgTitle))
	b.WriteString(m.titleInput.View())
	b.WriteString("\n")

	b.WriteString(m.label(fieldCorrespondent, i18n.MsgCorrespondent))
	b.WriteString(m.renderSelector(fieldCorrespondent, m.view.correspondents, m.correspondentIdx))
	b.WriteString("\n")

	b.WriteString(m.label(fieldDocumentType, i18n.MsgDocumentType))
	b.WriteString(m.renderSelector(fieldDocumentType, m.view.documentTypes, m.documentTypeIdx))
	b.WriteString("\n")

	b.WriteString(m.label(fieldTags, i18n.MsgTags))
	if chips := m.renderChips(); chips != "" {
		b.WriteString(chips + " ")
	}
	b.WriteString(m.tagInput.View())
	if panel := m.renderSuggestions(); panel != "" {
		b.WriteString("\n")
		b.WriteString(panel)
	}
	return b.String()
}

const labelWidth = 16

func (m DialogModel) label(field focusField, key string) string {
	text := components.ClampTextWidth(m.printer.T(key), labelWidth-2)
	padded := text + strings.Repeat(" ", max(labelWidth-lipgloss.Width(text), 1))
	if m.focus == field {
		return FocusLabelStyle.Render("› " + padded)
	}
	return LabelStyle.Render("  " + padded)
}

func (m DialogModel) renderSelector(field focusField, options []dialog.Option, idx int) string {
	if m.loading {
		return MutedStyle.Render(m.printer.T(i18n.MsgLoading))
	}
	name := m.printer.T(i18n.MsgNone)
	if idx > 0 && idx <= len(options) {
		name = components.SanitizeOneLine(options[idx-1].Name)
	}
	if m.focus == field {
		return SelectedStyle.Render("‹ " + name + " ›")
	}
	return NormalStyle.Render(name)
}

func (m DialogModel) renderChips() string {
	chips := make([]string, 0, len(m.view.chips))
	for i, name := range m.view.chips {
		name = components.SanitizeOneLine(name)
		if m.focus == fieldTags && i == m.chipIdx {
			chips = append(chips, SelectedStyle.Render("["+name+" ×]"))
			continue
		}
		chips = append(chips, AccentStyle.Render("["+name+"]"))
	}
	return strings.Join(chips, " ")
}

func (m DialogModel) renderSuggestions() string {
	if len(m.view.suggestions) == 0 {
		return ""
	}
	indent := strings.Repeat(" ", labelWidth+2)
	lines := make([]string, 0, len(m.view.suggestions))
	for i, s := range m.view.suggestions {
		var name strings.Builder
		for _, seg := range s.Segments {
			text := components.SanitizeOneLine(seg.Text)
			if seg.Matched {
				name.WriteString(MatchStyle.Render(text))
			} else {
				name.WriteString(NormalStyle.Render(text))
			}
		}
		line := fmt.Sprintf("%d %s", i+1, name.String())
		if i == m.view.highlighted {
			line = SuggestionActiveStyle.Render("› " + line)
		} else {
			line = MutedStyle.Render("  ") + line
		}
		lines = append(lines, indent+line)
	}
	return strings.Join(lines, "\n")
}

func (m DialogModel) renderAttachments(width int) string {
	title := m.printer.T(i18n.MsgAttachments)
	if len(m.view.rows) == 0 {
		return components.TitledBox(title, MutedStyle.Render(m.printer.T(i18n.MsgNoAttachments)), width)
	}
	title += " · " + m.printer.Sprintf(i18n.MsgSelectedCount, m.session.Attachments.CheckedCount(), len(m.view.rows))

	contentWidth := components.BoxContentWidth(width)
	columns := []components.TableColumn{
		{Header: "", Width: 3},
		{Header: m.printer.T(i18n.MsgName), Width: max(contentWidth-30, 8)},
		{Header: m.printer.T(i18n.MsgSize), Width: 10, Align: lipgloss.Right},
		{Header: m.printer.T(i18n.MsgType), Width: 6},
	}
	start, end := m.attachments.Window()
	rows := make([][]string, 0, end-start)
	for _, row := range m.view.rows[start:end] {
		rows = append(rows, []string{components.Checkbox(row.Checked), row.Name, row.Size, row.Icon})
	}
	if m.focus == fieldAttachments {
		grid := components.TableGridWithActiveRow(columns, rows, contentWidth, m.attachments.VisibleCursor())
		return components.ActiveBox(TitleStyle.Render(title)+"\n\n"+grid, width)
	}
	return components.TitledBox(title, components.TableGrid(columns, rows, contentWidth), width)
}

func (m DialogModel) renderActions() string {
	check := components.Checkbox(m.session.AddDefaultTag())
	defaultTag := check + " " + m.printer.Sprintf(i18n.MsgAddDefaultTag, m.deps.DefaultTagName)
	if m.focus == fieldDefaultTag {
		defaultTag = SelectedStyle.Render("› " + defaultTag)
	} else {
		defaultTag = NormalStyle.Render("  " + defaultTag)
	}

	submitLabel := m.printer.T(i18n.MsgSubmit)
	submitStyle := ButtonStyle
	switch {
	case !m.view.submitEnabled:
		submitLabel = m.printer.T(i18n.MsgUploading)
		submitStyle = ButtonDisabledStyle
	case m.focus == fieldSubmit:
		submitStyle = ButtonFocusStyle
	}
	cancelStyle := ButtonStyle
	if m.focus == fieldCancel {
		cancelStyle = ButtonFocusStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		submitStyle.Render(submitLabel), " ", cancelStyle.Render(m.printer.T(i18n.MsgCancel)))
	return components.Indent(defaultTag+"\n\n"+buttons, 2)
}

func (m DialogModel) statusHints() []string {
	t := m.printer.T
	hints := []string{components.Hint("tab", t(i18n.MsgHintNext))}
	switch m.focus {
	case fieldTags:
		hints = append(hints,
			components.Hint("enter", t(i18n.MsgHintAdd)),
			components.Hint("↑/↓", t(i18n.MsgHintChoose)),
			components.Hint("alt+1..5", t(i18n.MsgHintPick)),
			components.Hint("←/→ del", t(i18n.MsgHintRemove)),
		)
	case fieldAttachments:
		hints = append(hints,
			components.Hint("space", t(i18n.MsgHintToggle)),
			components.Hint("a", t(i18n.MsgHintAll)),
			components.Hint("n", t(i18n.MsgHintNone)),
		)
	case fieldCorrespondent, fieldDocumentType:
		hints = append(hints, components.Hint("←/→", t(i18n.MsgHintChange)))
	case fieldDefaultTag:
		hints = append(hints, components.Hint("space", t(i18n.MsgHintToggle)))
	}
	return append(hints,
		components.Hint("ctrl+s", t(i18n.MsgHintUpload)),
		components.Hint("esc", t(i18n.MsgHintCancel)),
	)
}

// --- Helpers ---

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func optionID(options []dialog.Option, idx int) *int {
	if idx <= 0 || idx > len(options) {
		return nil
	}
	id := options[idx-1].ID
	return &id
}
