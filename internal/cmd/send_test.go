package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/paperless-mail/internal/dialog"
	"github.com/gravitrone/paperless-mail/internal/i18n"
	"github.com/gravitrone/paperless-mail/internal/mail"
	"github.com/gravitrone/paperless-mail/internal/paperless"
	"github.com/gravitrone/paperless-mail/internal/upload"
)

type fakeCatalog struct {
	correspondentsErr error
}

func (f fakeCatalog) ListCorrespondents(context.Context) ([]paperless.Correspondent, error) {
	if f.correspondentsErr != nil {
		return nil, f.correspondentsErr
	}
	return []paperless.Correspondent{{ID: 4, Name: "ACME"}}, nil
}

func (fakeCatalog) ListDocumentTypes(context.Context) ([]paperless.DocumentType, error) {
	return []paperless.DocumentType{{ID: 2, Name: "Bill"}}, nil
}

func (fakeCatalog) ListTags(context.Context) ([]paperless.Tag, error) {
	return []paperless.Tag{{ID: 7, Name: "Invoice"}, {ID: 8, Name: "Receipt"}}, nil
}

type recordingTransport struct {
	req    upload.Request
	calls  int
	result upload.Result
	err    error
}

func (r *recordingTransport) Upload(_ context.Context, req upload.Request) (upload.Result, error) {
	r.req = req
	r.calls++
	return r.result, r.err
}

func sendPayload() *mail.Payload {
	return &mail.Payload{
		Message: mail.Message{Subject: "March invoice"},
		Attachments: []mail.Attachment{
			{Name: "a.pdf", Size: 1},
			{Name: "b.pdf", Size: 2},
			{Name: "c.pdf", Size: 3},
		},
	}
}

func sendDeps(transport upload.Transport) SendDeps {
	return SendDeps{Catalog: fakeCatalog{}, Transport: transport, Printer: i18n.New("en")}
}

func TestSendResolvesNamesAndIDs(t *testing.T) {
	transport := &recordingTransport{result: upload.Result{Success: true, TaskIDs: []string{"t1"}}}
	res, err := Send(context.Background(), sendPayload(), SendOptions{
		Correspondent: "acme",
		DocumentType:  "Bill",
		Tags:          []string{"8", " invoice "},
		AddDefaultTag: true,
	}, sendDeps(transport))
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, res.TaskIDs)

	opts := transport.req.Options
	assert.Equal(t, "March invoice", opts.Title)
	require.NotNil(t, opts.Correspondent)
	assert.Equal(t, 4, *opts.Correspondent)
	require.NotNil(t, opts.DocumentType)
	assert.Equal(t, 2, *opts.DocumentType)
	assert.Equal(t, []int{8, 7}, opts.Tags)
	assert.True(t, opts.AddDefaultTag)
	assert.Len(t, transport.req.Attachments, 3)
}

func TestSendSelectsAttachmentsByIndex(t *testing.T) {
	transport := &recordingTransport{result: upload.Result{Success: true}}
	_, err := Send(context.Background(), sendPayload(), SendOptions{Attachments: []int{2, 0}}, sendDeps(transport))
	require.NoError(t, err)

	names := []string{}
	for _, att := range transport.req.Attachments {
		names = append(names, att.Name)
	}
	assert.Equal(t, []string{"a.pdf", "c.pdf"}, names)
}

func TestSendNoAttachments(t *testing.T) {
	transport := &recordingTransport{result: upload.Result{Success: true}}
	_, err := Send(context.Background(), sendPayload(), SendOptions{NoAttachments: true, Title: " Custom "}, sendDeps(transport))
	require.NoError(t, err)
	assert.Empty(t, transport.req.Attachments)
	assert.Equal(t, "Custom", transport.req.Options.Title)
}

func TestSendAttachmentIndexOutOfRange(t *testing.T) {
	transport := &recordingTransport{}
	_, err := Send(context.Background(), sendPayload(), SendOptions{Attachments: []int{3}}, sendDeps(transport))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range (0..2)")
	assert.Zero(t, transport.calls)
}

func TestSendUnknownNames(t *testing.T) {
	transport := &recordingTransport{}
	_, err := Send(context.Background(), sendPayload(), SendOptions{DocumentType: "Nope"}, sendDeps(transport))
	assert.EqualError(t, err, `unknown document type "Nope"`)

	_, err = Send(context.Background(), sendPayload(), SendOptions{Tags: []string{"99"}}, sendDeps(transport))
	assert.EqualError(t, err, `unknown tag "99"`)
	assert.Zero(t, transport.calls)
}

func TestSendFailedListKeepsNumericIDs(t *testing.T) {
	listErr := errors.New("timeout")
	deps := sendDeps(&recordingTransport{result: upload.Result{Success: true}})
	deps.Catalog = fakeCatalog{correspondentsErr: listErr}

	_, err := Send(context.Background(), sendPayload(), SendOptions{Correspondent: "12"}, deps)
	require.NoError(t, err)

	_, err = Send(context.Background(), sendPayload(), SendOptions{Correspondent: "ACME"}, deps)
	assert.ErrorIs(t, err, listErr)
}

func TestSendTransportFailure(t *testing.T) {
	transport := &recordingTransport{result: upload.Result{Error: "disk full", TaskIDs: []string{"t1"}}}
	res, err := Send(context.Background(), sendPayload(), SendOptions{}, sendDeps(transport))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{"t1"}, res.TaskIDs)
}

func TestSendWithoutTransport(t *testing.T) {
	_, err := Send(context.Background(), sendPayload(), SendOptions{}, sendDeps(nil))
	assert.ErrorIs(t, err, dialog.ErrNoTransport)
}

func TestSendNilPayload(t *testing.T) {
	_, err := Send(context.Background(), nil, SendOptions{}, sendDeps(&recordingTransport{}))
	assert.ErrorIs(t, err, mail.ErrNoSessionData)
}

type taskSequence struct {
	states []string
	calls  int
}

func (s *taskSequence) GetTask(_ context.Context, id string) (*paperless.Task, error) {
	state := s.states[min(s.calls, len(s.states)-1)]
	s.calls++
	result := "duplicate document"
	doc := paperless.ID("12")
	return &paperless.Task{TaskID: id, Status: state, Result: &result, RelatedDocument: &doc}, nil
}

func TestWaitForTasksPollsUntilFinished(t *testing.T) {
	tasks := &taskSequence{states: []string{paperless.TaskPending, paperless.TaskStarted, paperless.TaskSuccess}}
	var out bytes.Buffer
	err := WaitForTasks(context.Background(), tasks, []string{"t1"}, time.Millisecond, i18n.New("en"), &out)
	require.NoError(t, err)
	assert.Equal(t, 3, tasks.calls)
	assert.Contains(t, out.String(), "Task t1: SUCCESS")
	assert.Contains(t, out.String(), "Document 12")
	assert.NotContains(t, out.String(), "duplicate document")
}

func TestWaitForTasksReportsFailure(t *testing.T) {
	tasks := &taskSequence{states: []string{paperless.TaskFailure}}
	var out bytes.Buffer
	err := WaitForTasks(context.Background(), tasks, []string{"t1"}, time.Millisecond, i18n.New("de"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 tasks")
	assert.Contains(t, out.String(), "duplicate document")
}

func TestWaitForTasksHonorsContext(t *testing.T) {
	tasks := &taskSequence{states: []string{paperless.TaskPending}}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := WaitForTasks(ctx, tasks, []string{"t1"}, 5*time.Millisecond, i18n.New("en"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
