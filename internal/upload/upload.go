package upload

import (
	"context"

	"github.com/gravitrone/paperless-mail/internal/mail"
)

// Options is the document metadata chosen in the dialog.
type Options struct {
	Title         string
	Correspondent *int
	DocumentType  *int
	Tags          []int
	AddDefaultTag bool
}

// Request is one submit: the email, the attachments to file and the metadata.
type Request struct {
	Message     mail.Message
	Attachments []mail.Attachment
	Options     Options
}

// Result is the outcome of a submit as seen by the dialog.
type Result struct {
	Success bool
	Error   string
	TaskIDs []string
}

// Transport sends a request to the document server.
type Transport interface {
	Upload(ctx context.Context, req Request) (Result, error)
}
