package logging

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Common log attribute keys.
const (
	KeyOperation = "operation"
	KeyList      = "list"
	KeyError     = "error"
	KeyTaskID    = "task_id"
	KeyFile      = "file"
	KeyCount     = "count"
	KeyStatus    = "status"
)

const prefix = "paperless-mail"

// Setup opens path for appending and returns a text logger writing to it.
// The terminal owns stdout, so the log never goes there. An empty path
// returns a logger that drops everything.
func Setup(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), nopCloser{}, nil
	}
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger with no output.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// List names the catalog list a message is about.
func List(name string) slog.Attr {
	return slog.String(KeyList, name)
}

func TaskID(id string) slog.Attr {
	return slog.String(KeyTaskID, id)
}

func File(name string) slog.Attr {
	return slog.String(KeyFile, name)
}

func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns an attribute for err. A nil error yields an empty group,
// which slog omits.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken masks an API token, keeping only its length.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
