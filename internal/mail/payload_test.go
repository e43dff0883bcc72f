package mail

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEML = "From: Alice Example <alice@example.com>\r\n" +
	"To: Bob <bob@example.com>, carol@example.com\r\n" +
	"Subject: Invoice March\r\n" +
	"Date: Mon, 03 Mar 2025 10:15:00 +0100\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=\"XYZ\"\r\n" +
	"\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Please find the invoice attached.\r\n" +
	"--XYZ\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=\"invoice.pdf\"\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"JVBERi0xLjQK\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/csv\r\n" +
	"Content-Disposition: attachment; filename=\"items.csv\"\r\n" +
	"\r\n" +
	"a,b\r\n" +
	"--XYZ--\r\n"

func TestParseEMLExtractsHeadersAndAttachments(t *testing.T) {
	payload, err := ParseEML([]byte(sampleEML))
	require.NoError(t, err)

	msg := payload.Message
	assert.Equal(t, "Invoice March", msg.Subject)
	assert.Contains(t, msg.Author, "alice@example.com")
	assert.Equal(t, []string{"Bob <bob@example.com>", "carol@example.com"}, msg.Recipients)
	assert.Equal(t, 2025, msg.Date.Year())
	assert.Contains(t, msg.Body, "invoice attached")
	assert.NotEmpty(t, msg.Raw)

	require.Len(t, payload.Attachments, 2)
	assert.Equal(t, "invoice.pdf", payload.Attachments[0].Name)
	assert.Equal(t, "application/pdf", payload.Attachments[0].ContentType)
	assert.Equal(t, "%PDF-1.4\n", string(payload.Attachments[0].Content))
	assert.Equal(t, int64(9), payload.Attachments[0].Size)
	assert.Equal(t, "items.csv", payload.Attachments[1].Name)
}

func TestParseEMLEmptyIsNoSessionData(t *testing.T) {
	_, err := ParseEML([]byte("  \n"))
	assert.True(t, errors.Is(err, ErrNoSessionData))
}

func TestLoadMissingFileIsNoSessionData(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.eml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSessionData))

	_, err = Load("")
	assert.True(t, errors.Is(err, ErrNoSessionData))
}

func TestLoadEMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.eml")
	require.NoError(t, os.WriteFile(path, []byte(sampleEML), 0600))

	payload, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Invoice March", payload.Message.Subject)
	assert.Len(t, payload.Attachments, 2)
}

func TestLoadJSONPayloadReadsAttachmentFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scan.pdf"), []byte("%PDF"), 0600))
	doc := `{"emailUploadData": {
		"message": {"author": "a@example.com", "recipients": ["b@example.com"], "subject": "Scan", "date": "2025-03-03T10:15:00Z"},
		"attachments": [{"name": "scan.pdf", "contentType": "application/pdf", "path": "scan.pdf"}]
	}}`
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	payload, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Scan", payload.Message.Subject)
	assert.True(t, time.Date(2025, 3, 3, 10, 15, 0, 0, time.UTC).Equal(payload.Message.Date))
	require.Len(t, payload.Attachments, 1)
	assert.Equal(t, []byte("%PDF"), payload.Attachments[0].Content)
	assert.Equal(t, int64(4), payload.Attachments[0].Size)
}

func TestDecodeJSONUnwrappedShape(t *testing.T) {
	payload, err := DecodeJSON([]byte(`{"message": {"subject": "Hi"}, "attachments": []}`), "")
	require.NoError(t, err)
	assert.Equal(t, "Hi", payload.Message.Subject)
	assert.Empty(t, payload.Attachments)
}

func TestDecodeJSONWithoutMessageIsNoSessionData(t *testing.T) {
	_, err := DecodeJSON([]byte(`{}`), "")
	assert.True(t, errors.Is(err, ErrNoSessionData))

	_, err = DecodeJSON([]byte(`{"emailUploadData": null}`), "")
	assert.True(t, errors.Is(err, ErrNoSessionData))
}

func TestDecodeJSONMissingAttachmentFile(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"message": {"subject": "x"}, "attachments": [{"name": "a.pdf", "path": "missing.pdf"}]}`), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.pdf")
}

func TestDecodeJSONInvalid(t *testing.T) {
	_, err := DecodeJSON([]byte(`{`), "")
	assert.Error(t, err)
}

func TestRFC822PrefersRawBytes(t *testing.T) {
	msg := Message{Raw: []byte("raw")}
	out, err := msg.RFC822()
	require.NoError(t, err)
	assert.Equal(t, []byte("raw"), out)
}

func TestRFC822BuildsMessageFromHeaders(t *testing.T) {
	msg := Message{
		Author:     "Alice <alice@example.com>",
		Recipients: []string{"bob@example.com"},
		Subject:    "Receipt",
		Date:       time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Body:       "hello",
	}
	out, err := msg.RFC822()
	require.NoError(t, err)

	parsed, err := ParseEML(out)
	require.NoError(t, err)
	assert.Equal(t, "Receipt", parsed.Message.Subject)
	assert.Equal(t, []string{"bob@example.com"}, parsed.Message.Recipients)
	assert.Contains(t, parsed.Message.Body, "hello")
}

func TestRFC822FillsMissingHeaders(t *testing.T) {
	out, err := Message{Author: "Some Sender"}.RFC822()
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "(no subject)")
	assert.Contains(t, text, "undisclosed-recipients@localhost")
}

func TestMessageFilename(t *testing.T) {
	assert.Equal(t, "Invoice_ March.eml", Message{Subject: "Invoice/ March"}.Filename())
	assert.Equal(t, "email.eml", Message{}.Filename())
	long := Message{Subject: strings.Repeat("a", 200)}.Filename()
	assert.Equal(t, 84, len(long))
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "PDF", Icon("x.pdf", ""))
	assert.Equal(t, "PDF", Icon("x", "application/pdf"))
	assert.Equal(t, "IMG", Icon("photo.JPG", ""))
	assert.Equal(t, "DOC", Icon("letter.docx", ""))
	assert.Equal(t, "XLS", Icon("items.csv", "text/csv"))
	assert.Equal(t, "ZIP", Icon("a.zip", ""))
	assert.Equal(t, "TXT", Icon("notes.txt", ""))
	assert.Equal(t, "EML", Icon("fwd.eml", ""))
	assert.Equal(t, "FILE", Icon("blob", "application/octet-stream"))
}
