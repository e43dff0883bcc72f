package dialog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gravitrone/paperless-mail/internal/logging"
	"github.com/gravitrone/paperless-mail/internal/paperless"
	"github.com/gravitrone/paperless-mail/internal/tags"
)

// Option is one choice of the correspondent or document type selector.
type Option struct {
	ID   int
	Name string
}

// CatalogSource lists the metadata the dialog offers.
type CatalogSource interface {
	ListCorrespondents(ctx context.Context) ([]paperless.Correspondent, error)
	ListDocumentTypes(ctx context.Context) ([]paperless.DocumentType, error)
	ListTags(ctx context.Context) ([]paperless.Tag, error)
}

// Catalog holds the lists fetched from the server. A list whose fetch
// failed is nil and its error is kept.
type Catalog struct {
	Correspondents []Option
	DocumentTypes  []Option
	Tags           []tags.Tag

	CorrespondentsErr error
	DocumentTypesErr  error
	TagsErr           error
}

// FetchCatalog loads the three lists independently. Failures are logged
// and leave only the affected list empty.
func FetchCatalog(ctx context.Context, src CatalogSource, logger *slog.Logger) Catalog {
	logger = logging.WithOperation(logging.OrDiscard(logger), "catalog")

	var (
		c  Catalog
		wg sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		items, err := src.ListCorrespondents(ctx)
		if err != nil {
			c.CorrespondentsErr = err
			return
		}
		c.Correspondents = make([]Option, 0, len(items))
		for _, item := range items {
			c.Correspondents = append(c.Correspondents, Option{ID: item.ID, Name: item.Name})
		}
	}()
	go func() {
		defer wg.Done()
		items, err := src.ListDocumentTypes(ctx)
		if err != nil {
			c.DocumentTypesErr = err
			return
		}
		c.DocumentTypes = make([]Option, 0, len(items))
		for _, item := range items {
			c.DocumentTypes = append(c.DocumentTypes, Option{ID: item.ID, Name: item.Name})
		}
	}()
	go func() {
		defer wg.Done()
		items, err := src.ListTags(ctx)
		if err != nil {
			c.TagsErr = err
			return
		}
		c.Tags = make([]tags.Tag, 0, len(items))
		for _, item := range items {
			c.Tags = append(c.Tags, tags.Tag{ID: item.ID, Name: item.Name})
		}
	}()
	wg.Wait()

	for _, f := range []struct {
		name string
		n    int
		err  error
	}{
		{"correspondents", len(c.Correspondents), c.CorrespondentsErr},
		{"document_types", len(c.DocumentTypes), c.DocumentTypesErr},
		{"tags", len(c.Tags), c.TagsErr},
	} {
		if f.err != nil {
			logger.Error("list fetch failed", logging.List(f.name), logging.Err(f.err))
			continue
		}
		logger.Debug("list fetched", logging.List(f.name), logging.Count(f.n))
	}
	return c
}
