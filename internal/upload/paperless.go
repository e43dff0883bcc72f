package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gravitrone/paperless-mail/internal/logging"
	"github.com/gravitrone/paperless-mail/internal/mail"
	"github.com/gravitrone/paperless-mail/internal/paperless"
)

// DefaultTagName is the tag added when Options.AddDefaultTag is set and no
// other name is configured.
const DefaultTagName = "Paperless"

// ErrNothingToUpload is returned when the message is skipped and no
// attachment is selected.
var ErrNothingToUpload = errors.New("nothing to upload")

// DocumentClient is the part of the Paperless API the transport needs.
type DocumentClient interface {
	FindTag(ctx context.Context, name string) (*paperless.Tag, error)
	CreateTag(ctx context.Context, input paperless.CreateTagInput) (*paperless.Tag, error)
	PostDocument(ctx context.Context, input paperless.DocumentInput) (string, error)
}

// TransportOptions configures a PaperlessTransport.
type TransportOptions struct {
	DefaultTag  string
	SkipMessage bool
	Logger      *slog.Logger
}

// PaperlessTransport files the email and each attachment as separate
// documents sharing the same metadata.
type PaperlessTransport struct {
	client      DocumentClient
	defaultTag  string
	skipMessage bool
	logger      *slog.Logger
}

// NewPaperlessTransport creates a transport over client.
func NewPaperlessTransport(client DocumentClient, opts TransportOptions) *PaperlessTransport {
	name := strings.TrimSpace(opts.DefaultTag)
	if name == "" {
		name = DefaultTagName
	}
	return &PaperlessTransport{
		client:      client,
		defaultTag:  name,
		skipMessage: opts.SkipMessage,
		logger:      logging.WithOperation(logging.OrDiscard(opts.Logger), "upload"),
	}
}

// Upload posts every document of req. The first failure stops the upload;
// task ids of documents already accepted are still reported.
func (t *PaperlessTransport) Upload(ctx context.Context, req Request) (Result, error) {
	docs, err := t.documents(req)
	if err != nil {
		return failed(nil, err)
	}

	tags := slices.Clone(req.Options.Tags)
	if req.Options.AddDefaultTag {
		id, err := t.resolveDefaultTag(ctx)
		if err != nil {
			return failed(nil, fmt.Errorf("default tag %q: %w", t.defaultTag, err))
		}
		if !slices.Contains(tags, id) {
			tags = append(tags, id)
		}
	}

	taskIDs := make([]string, 0, len(docs))
	for _, doc := range docs {
		doc.Correspondent = req.Options.Correspondent
		doc.DocumentType = req.Options.DocumentType
		doc.Tags = tags

		taskID, err := t.client.PostDocument(ctx, doc)
		if err != nil {
			t.logger.Error("post document failed", logging.File(doc.Filename), logging.Err(err))
			return failed(taskIDs, fmt.Errorf("upload %s: %w", doc.Filename, err))
		}
		t.logger.Info("document queued", logging.File(doc.Filename), logging.TaskID(taskID))
		taskIDs = append(taskIDs, taskID)
	}

	return Result{Success: true, TaskIDs: taskIDs}, nil
}

func (t *PaperlessTransport) documents(req Request) ([]paperless.DocumentInput, error) {
	title := strings.TrimSpace(req.Options.Title)
	docs := make([]paperless.DocumentInput, 0, len(req.Attachments)+1)

	if !t.skipMessage {
		raw, err := req.Message.RFC822()
		if err != nil {
			return nil, fmt.Errorf("build message: %w", err)
		}
		doc := paperless.DocumentInput{
			Filename:    req.Message.Filename(),
			ContentType: "message/rfc822",
			Content:     raw,
			Title:       title,
		}
		if !req.Message.Date.IsZero() {
			created := req.Message.Date
			doc.Created = &created
		}
		docs = append(docs, doc)
	}

	for _, att := range req.Attachments {
		docs = append(docs, paperless.DocumentInput{
			Filename:    att.Name,
			ContentType: att.ContentType,
			Content:     att.Content,
			Title:       AttachmentTitle(title, att),
		})
	}

	if len(docs) == 0 {
		return nil, ErrNothingToUpload
	}
	return docs, nil
}

func (t *PaperlessTransport) resolveDefaultTag(ctx context.Context) (int, error) {
	tag, err := t.client.FindTag(ctx, t.defaultTag)
	if err != nil {
		return 0, err
	}
	if tag != nil {
		return tag.ID, nil
	}
	tag, err = t.client.CreateTag(ctx, paperless.CreateTagInput{Name: t.defaultTag})
	if err != nil {
		return 0, err
	}
	t.logger.Info("default tag created", slog.String("tag", tag.Name), slog.Int("id", tag.ID))
	return tag.ID, nil
}

// AttachmentTitle is "<title> - <name>", or the bare name without a title.
func AttachmentTitle(title string, att mail.Attachment) string {
	if title == "" {
		return att.Name
	}
	return title + " - " + att.Name
}

func failed(taskIDs []string, err error) (Result, error) {
	return Result{Success: false, Error: err.Error(), TaskIDs: taskIDs}, err
}
