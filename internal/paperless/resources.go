package paperless

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	pageSize = "100"
	maxPages = 1000
)

// ListCorrespondents returns every correspondent.
func (c *Client) ListCorrespondents(ctx context.Context) ([]Correspondent, error) {
	return listAll[Correspondent](ctx, c, "/api/correspondents/")
}

// ListDocumentTypes returns every document type.
func (c *Client) ListDocumentTypes(ctx context.Context) ([]DocumentType, error) {
	return listAll[DocumentType](ctx, c, "/api/document_types/")
}

// ListTags returns every tag.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	return listAll[Tag](ctx, c, "/api/tags/")
}

// FindTag looks a tag up by exact name, ignoring case.
func (c *Client) FindTag(ctx context.Context, name string) (*Tag, error) {
	data, err := c.get(ctx, buildQuery("/api/tags/", QueryParams{"name__iexact": name}))
	if err != nil {
		return nil, err
	}
	var p page[Tag]
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for _, tag := range p.Results {
		if strings.EqualFold(tag.Name, name) {
			return &tag, nil
		}
	}
	return nil, nil
}

// CreateTag creates a tag.
func (c *Client) CreateTag(ctx context.Context, input CreateTagInput) (*Tag, error) {
	data, err := c.post(ctx, "/api/tags/", input)
	if err != nil {
		return nil, err
	}
	var tag Tag
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &tag, nil
}

// Ping checks that the server is reachable and the token is accepted.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, buildQuery("/api/tags/", QueryParams{"page_size": "1"}))
	return err
}

// listAll walks the next links of a paginated list.
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	next := buildQuery(path, QueryParams{"page_size": pageSize})
	var out []T
	for pages := 0; next != ""; pages++ {
		if pages == maxPages {
			return nil, fmt.Errorf("list %s: too many pages", path)
		}
		data, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}
		var p page[T]
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		out = append(out, p.Results...)

		next = ""
		if p.Next != nil && *p.Next != "" {
			next = c.relative(*p.Next)
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
