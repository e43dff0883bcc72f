package paperless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// PostDocument uploads a file to the consumer and returns the task id.
func (c *Client) PostDocument(ctx context.Context, input DocumentInput) (string, error) {
	if input.Filename == "" {
		return "", fmt.Errorf("post document: filename is required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename="%s"`, escapeQuotes(input.Filename)))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(input.Content); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}

	fields := [][2]string{}
	if input.Title != "" {
		fields = append(fields, [2]string{"title", input.Title})
	}
	if input.Created != nil {
		fields = append(fields, [2]string{"created", input.Created.Format(time.RFC3339)})
	}
	if input.Correspondent != nil {
		fields = append(fields, [2]string{"correspondent", strconv.Itoa(*input.Correspondent)})
	}
	if input.DocumentType != nil {
		fields = append(fields, [2]string{"document_type", strconv.Itoa(*input.DocumentType)})
	}
	for _, id := range input.Tags {
		fields = append(fields, [2]string{"tags", strconv.Itoa(id)})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	data, _, err := c.do(ctx, http.MethodPost, "/api/documents/post_document/", &buf, w.FormDataContentType())
	if err != nil {
		return "", err
	}

	var taskID string
	if err := json.Unmarshal(data, &taskID); err != nil {
		taskID = strings.Trim(strings.TrimSpace(string(data)), `"`)
	}
	return taskID, nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
