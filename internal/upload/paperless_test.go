package upload

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gravitrone/paperless-mail/internal/mail"
	"github.com/gravitrone/paperless-mail/internal/paperless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	tags      map[string]int
	created   []string
	posted    []paperless.DocumentInput
	failAfter int
	findErr   error
}

func newFakeClient() *fakeClient {
	return &fakeClient{tags: map[string]int{}, failAfter: -1}
}

func (f *fakeClient) FindTag(_ context.Context, name string) (*paperless.Tag, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if id, ok := f.tags[name]; ok {
		return &paperless.Tag{ID: id, Name: name}, nil
	}
	return nil, nil
}

func (f *fakeClient) CreateTag(_ context.Context, input paperless.CreateTagInput) (*paperless.Tag, error) {
	id := 100 + len(f.created)
	f.created = append(f.created, input.Name)
	f.tags[input.Name] = id
	return &paperless.Tag{ID: id, Name: input.Name}, nil
}

func (f *fakeClient) PostDocument(_ context.Context, input paperless.DocumentInput) (string, error) {
	if f.failAfter >= 0 && len(f.posted) == f.failAfter {
		return "", errors.New("HTTP 400: unsupported file")
	}
	f.posted = append(f.posted, input)
	return "task-" + input.Filename, nil
}

func sampleRequest() Request {
	return Request{
		Message: mail.Message{
			Subject: "March invoice",
			Date:    time.Date(2025, 3, 3, 10, 15, 0, 0, time.UTC),
			Raw:     []byte("Subject: March invoice\r\n\r\nhello\r\n"),
		},
		Attachments: []mail.Attachment{
			{Name: "invoice.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
			{Name: "items.csv", ContentType: "text/csv", Content: []byte("a,b")},
		},
		Options: Options{Title: "ACME March", Tags: []int{7}},
	}
}

func TestUploadMessageAndAttachments(t *testing.T) {
	client := newFakeClient()
	tr := NewPaperlessTransport(client, TransportOptions{})

	correspondent := 4
	req := sampleRequest()
	req.Options.Correspondent = &correspondent

	res, err := tr.Upload(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, []string{"task-March invoice.eml", "task-invoice.pdf", "task-items.csv"}, res.TaskIDs)

	require.Len(t, client.posted, 3)
	msg := client.posted[0]
	assert.Equal(t, "message/rfc822", msg.ContentType)
	assert.Equal(t, "ACME March", msg.Title)
	assert.Equal(t, req.Message.Raw, msg.Content)
	require.NotNil(t, msg.Created)
	assert.True(t, req.Message.Date.Equal(*msg.Created))

	assert.Equal(t, "ACME March - invoice.pdf", client.posted[1].Title)
	assert.Equal(t, "ACME March - items.csv", client.posted[2].Title)
	assert.Nil(t, client.posted[1].Created)
	for _, doc := range client.posted {
		assert.Equal(t, []int{7}, doc.Tags)
		assert.Equal(t, &correspondent, doc.Correspondent)
		assert.Nil(t, doc.DocumentType)
	}
}

func TestUploadSkipMessage(t *testing.T) {
	client := newFakeClient()
	tr := NewPaperlessTransport(client, TransportOptions{SkipMessage: true})

	res, err := tr.Upload(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Len(t, res.TaskIDs, 2)
	assert.Equal(t, "invoice.pdf", client.posted[0].Filename)
}

func TestUploadNothingSelected(t *testing.T) {
	client := newFakeClient()
	tr := NewPaperlessTransport(client, TransportOptions{SkipMessage: true})

	req := sampleRequest()
	req.Attachments = nil
	res, err := tr.Upload(context.Background(), req)
	require.ErrorIs(t, err, ErrNothingToUpload)
	assert.False(t, res.Success)
	assert.Equal(t, "nothing to upload", res.Error)
	assert.Empty(t, client.posted)
}

func TestUploadDefaultTagExisting(t *testing.T) {
	client := newFakeClient()
	client.tags["Paperless"] = 3
	tr := NewPaperlessTransport(client, TransportOptions{})

	req := sampleRequest()
	req.Options.AddDefaultTag = true
	_, err := tr.Upload(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, client.created)
	assert.Equal(t, []int{7, 3}, client.posted[0].Tags)
	assert.Equal(t, []int{7}, req.Options.Tags)
}

func TestUploadDefaultTagCreated(t *testing.T) {
	client := newFakeClient()
	tr := NewPaperlessTransport(client, TransportOptions{DefaultTag: " Mail "})

	req := sampleRequest()
	req.Options.AddDefaultTag = true
	req.Options.Tags = nil
	_, err := tr.Upload(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mail"}, client.created)
	assert.Equal(t, []int{100}, client.posted[0].Tags)
}

func TestUploadDefaultTagAlreadySelected(t *testing.T) {
	client := newFakeClient()
	client.tags["Paperless"] = 7
	tr := NewPaperlessTransport(client, TransportOptions{})

	req := sampleRequest()
	req.Options.AddDefaultTag = true
	_, err := tr.Upload(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, client.posted[0].Tags)
}

func TestUploadDefaultTagLookupFails(t *testing.T) {
	client := newFakeClient()
	client.findErr = errors.New("HTTP 500")
	tr := NewPaperlessTransport(client, TransportOptions{})

	req := sampleRequest()
	req.Options.AddDefaultTag = true
	res, err := tr.Upload(context.Background(), req)
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, `default tag "Paperless"`)
	assert.Empty(t, client.posted)
}

func TestUploadStopsAtFirstFailure(t *testing.T) {
	client := newFakeClient()
	client.failAfter = 1
	tr := NewPaperlessTransport(client, TransportOptions{})

	res, err := tr.Upload(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, []string{"task-March invoice.eml"}, res.TaskIDs)
	assert.Contains(t, res.Error, "upload invoice.pdf")
	assert.Len(t, client.posted, 1)
}

func TestAttachmentTitle(t *testing.T) {
	att := mail.Attachment{Name: "a.pdf"}
	assert.Equal(t, "a.pdf", AttachmentTitle("", att))
	assert.Equal(t, "T - a.pdf", AttachmentTitle("T", att))
}

func TestUploadAgainstServer(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"abc"`))
	}))
	t.Cleanup(srv.Close)

	tr := NewPaperlessTransport(paperless.NewClient(srv.URL, "tok"), TransportOptions{})
	req := sampleRequest()
	req.Attachments = req.Attachments[:1]

	res, err := tr.Upload(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "abc"}, res.TaskIDs)
	assert.Equal(t, []string{
		"POST /api/documents/post_document/",
		"POST /api/documents/post_document/",
	}, paths)
}
