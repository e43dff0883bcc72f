package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gravitrone/paperless-mail/internal/config"
	"github.com/gravitrone/paperless-mail/internal/i18n"
	"github.com/gravitrone/paperless-mail/internal/logging"
	"github.com/gravitrone/paperless-mail/internal/paperless"
	"github.com/gravitrone/paperless-mail/internal/upload"
)

// Runtime is what every server-facing command needs, built from the
// loaded config.
type Runtime struct {
	Config  *config.Config
	Client  *paperless.Client
	Printer *i18n.Printer
	Logger  *slog.Logger

	closer io.Closer
}

// NewRuntime loads the config and opens the log file.
func NewRuntime() (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("not logged in: %w", err)
	}
	logger, closer, err := logging.Setup(cfg.LogFile, slog.LevelDebug)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		Config:  cfg,
		Client:  paperless.NewClient(cfg.URL, cfg.Token),
		Printer: i18n.New(cfg.Language),
		Logger:  logger,
		closer:  closer,
	}, nil
}

// Transport returns the upload transport configured for this runtime.
func (r *Runtime) Transport() *upload.PaperlessTransport {
	return upload.NewPaperlessTransport(r.Client, upload.TransportOptions{
		DefaultTag:  r.Config.DefaultTag,
		SkipMessage: r.Config.SkipMessage,
		Logger:      r.Logger,
	})
}

func (r *Runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
