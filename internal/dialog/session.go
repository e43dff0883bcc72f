package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gravitrone/paperless-mail/internal/i18n"
	"github.com/gravitrone/paperless-mail/internal/logging"
	"github.com/gravitrone/paperless-mail/internal/mail"
	"github.com/gravitrone/paperless-mail/internal/tags"
	"github.com/gravitrone/paperless-mail/internal/upload"
)

var (
	// ErrSubmitInFlight is returned when a submit is started while another
	// one has not finished, or after the session was closed.
	ErrSubmitInFlight = errors.New("submit already in progress")
	// ErrUploadFailed wraps a transport result that reported failure.
	ErrUploadFailed = errors.New("upload failed")
	// ErrNoTransport is returned when a submit has nowhere to send to.
	ErrNoTransport = errors.New("no upload transport configured")
)

// View is the surface the session renders into.
type View interface {
	tags.View
	RenderAttachments(rows []AttachmentRow)
	RenderOptions(correspondents, documentTypes []Option)
	SetSubmitEnabled(enabled bool)
	ShowError(msg string)
	ShowSuccess(msg string)
}

// Config holds the per-session settings.
type Config struct {
	Printer       *i18n.Printer
	Logger        *slog.Logger
	Threshold     float64
	AddDefaultTag bool
}

// Preview is the localized email header shown above the form.
type Preview struct {
	From    string
	To      string
	Subject string
	Date    string
}

// Session is one open upload dialog. It is created by Open and discarded by
// Close; it is not safe for concurrent use.
type Session struct {
	payload *mail.Payload
	view    View
	printer *i18n.Printer
	logger  *slog.Logger

	Tags        *tags.Controller
	Attachments *AttachmentList

	title          string
	correspondents []Option
	documentTypes  []Option
	correspondent  *int
	documentType   *int
	addDefaultTag  bool

	submitting bool
	closed     bool
}

// Open starts a session for payload. A nil payload shows the blocking
// error and returns mail.ErrNoSessionData.
func Open(payload *mail.Payload, view View, cfg Config) (*Session, error) {
	printer := cfg.Printer
	if printer == nil {
		printer = i18n.New("")
	}
	if payload == nil {
		if view != nil {
			view.ShowError(printer.T(i18n.MsgNoSessionData))
		}
		return nil, mail.ErrNoSessionData
	}
	if view == nil {
		view = nopView{}
	}

	s := &Session{
		payload:       payload,
		view:          view,
		printer:       printer,
		logger:        logging.WithOperation(logging.OrDiscard(cfg.Logger), "dialog"),
		Tags:          tags.NewController(view, tags.WithThreshold(cfg.Threshold)),
		Attachments:   NewAttachmentList(payload.Attachments),
		addDefaultTag: cfg.AddDefaultTag,
	}
	s.title = s.defaultTitle()
	s.view.RenderAttachments(s.Attachments.Rows())
	s.view.SetSubmitEnabled(true)
	s.logger.Debug("session opened", logging.Count(s.Attachments.Len()))
	return s, nil
}

// Close ends the session. Later submits are refused.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.Tags.Blur()
	s.logger.Debug("session closed")
}

func (s *Session) Closed() bool {
	return s.closed
}

func (s *Session) Message() mail.Message {
	return s.payload.Message
}

func (s *Session) Printer() *i18n.Printer {
	return s.printer
}

// Preview returns the header fields with the fallbacks the dialog shows.
func (s *Session) Preview() Preview {
	msg := s.payload.Message
	subject := msg.Subject
	if subject == "" {
		subject = s.printer.T(i18n.MsgNoSubject)
	}
	return Preview{
		From:    msg.Author,
		To:      strings.Join(msg.Recipients, ", "),
		Subject: subject,
		Date:    s.printer.FormatDate(msg.Date),
	}
}

// ApplyCatalog installs fetched lists. Tags become the autocomplete
// candidates.
func (s *Session) ApplyCatalog(c Catalog) {
	s.correspondents = append([]Option(nil), c.Correspondents...)
	s.documentTypes = append([]Option(nil), c.DocumentTypes...)
	s.view.RenderOptions(s.Correspondents(), s.DocumentTypes())
	s.Tags.SetCandidates(c.Tags)
}

func (s *Session) Correspondents() []Option {
	return append([]Option(nil), s.correspondents...)
}

func (s *Session) DocumentTypes() []Option {
	return append([]Option(nil), s.documentTypes...)
}

func (s *Session) Title() string {
	return s.title
}

func (s *Session) SetTitle(title string) {
	s.title = title
}

// SetCorrespondent selects a correspondent id; nil clears the choice.
func (s *Session) SetCorrespondent(id *int) {
	s.correspondent = cloneID(id)
}

func (s *Session) Correspondent() *int {
	return cloneID(s.correspondent)
}

// SetDocumentType selects a document type id; nil clears the choice.
func (s *Session) SetDocumentType(id *int) {
	s.documentType = cloneID(id)
}

func (s *Session) DocumentType() *int {
	return cloneID(s.documentType)
}

func (s *Session) SetAddDefaultTag(on bool) {
	s.addDefaultTag = on
}

func (s *Session) AddDefaultTag() bool {
	return s.addDefaultTag
}

// ToggleAttachment flips row i and re-renders the list.
func (s *Session) ToggleAttachment(i int) {
	if s.Attachments.Toggle(i) {
		s.view.RenderAttachments(s.Attachments.Rows())
	}
}

// SelectAllAttachments checks every row.
func (s *Session) SelectAllAttachments() {
	s.Attachments.SelectAll()
	s.view.RenderAttachments(s.Attachments.Rows())
}

// SelectNoAttachments clears every row.
func (s *Session) SelectNoAttachments() {
	s.Attachments.SelectNone()
	s.view.RenderAttachments(s.Attachments.Rows())
}

func (s *Session) Submitting() bool {
	return s.submitting
}

// BuildRequest assembles the outbound request from the current form state.
// Selected tag names without a candidate are left out.
func (s *Session) BuildRequest() upload.Request {
	title := strings.TrimSpace(s.title)
	if title == "" {
		title = s.defaultTitle()
	}
	return upload.Request{
		Message:     s.payload.Message,
		Attachments: s.Attachments.Selected(),
		Options: upload.Options{
			Title:         title,
			Correspondent: cloneID(s.correspondent),
			DocumentType:  cloneID(s.documentType),
			Tags:          s.Tags.ResolveIDs(),
			AddDefaultTag: s.addDefaultTag,
		},
	}
}

// BeginSubmit marks a submit in flight and disables the submit control. It
// reports false when a submit is already running or the session is closed.
func (s *Session) BeginSubmit() (upload.Request, bool) {
	if s.closed || s.submitting {
		return upload.Request{}, false
	}
	s.submitting = true
	s.view.SetSubmitEnabled(false)
	req := s.BuildRequest()
	s.logger.Info("submit started",
		logging.Count(len(req.Attachments)),
		slog.Any("tags", req.Options.Tags))
	return req, true
}

// FinishSubmit re-enables the submit control and reports the outcome.
// The returned error is nil only on success.
func (s *Session) FinishSubmit(res upload.Result, err error) error {
	s.submitting = false
	s.view.SetSubmitEnabled(true)

	msg := res.Error
	if err == nil && !res.Success {
		if msg == "" {
			msg = s.printer.T(i18n.MsgUnknownError)
		}
		err = fmt.Errorf("%w: %s", ErrUploadFailed, msg)
	}
	if err != nil {
		if msg == "" {
			msg = err.Error()
		}
		s.logger.Error("submit failed", logging.Err(err))
		s.view.ShowError(s.printer.Sprintf(i18n.MsgUploadFailed, msg))
		return err
	}

	for _, id := range res.TaskIDs {
		s.logger.Info("submit queued", logging.TaskID(id))
	}
	s.view.ShowSuccess(s.printer.T(i18n.MsgUploadSuccess))
	return nil
}

// Submit runs a whole submit synchronously.
func (s *Session) Submit(ctx context.Context, transport upload.Transport) (upload.Result, error) {
	req, ok := s.BeginSubmit()
	if !ok {
		return upload.Result{}, ErrSubmitInFlight
	}
	if transport == nil {
		return upload.Result{}, s.FinishSubmit(upload.Result{}, ErrNoTransport)
	}
	res, err := transport.Upload(ctx, req)
	return res, s.FinishSubmit(res, err)
}

func (s *Session) defaultTitle() string {
	if subject := strings.TrimSpace(s.payload.Message.Subject); subject != "" {
		return subject
	}
	return s.printer.T(i18n.MsgDefaultTitle)
}

func cloneID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

type nopView struct{}

func (nopView) RenderChips([]string)                     {}
func (nopView) RenderSuggestions([]tags.Suggestion, int) {}
func (nopView) SetInput(string)                          {}
func (nopView) FocusInput()                              {}
func (nopView) RenderAttachments([]AttachmentRow)        {}
func (nopView) RenderOptions([]Option, []Option)         {}
func (nopView) SetSubmitEnabled(bool)                    {}
func (nopView) ShowError(string)                         {}
func (nopView) ShowSuccess(string)                       {}
