package mail

import (
	"bytes"
	"encoding/json"
	netmail "net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"
	"github.com/pkg/errors"
)

// ErrNoSessionData means there is no email to show.
var ErrNoSessionData = errors.New("no email data found")

// Message is the email under review.
type Message struct {
	Author     string    `json:"author"`
	Recipients []string  `json:"recipients"`
	Subject    string    `json:"subject"`
	Date       time.Time `json:"date"`
	Body       string    `json:"body,omitempty"`
	RawPath    string    `json:"rawPath,omitempty"`

	// Raw holds the original RFC 5322 bytes when known.
	Raw []byte `json:"-"`
}

// Attachment is one file attached to the message.
type Attachment struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
	Path        string `json:"path,omitempty"`

	Content []byte `json:"-"`
}

// Payload is everything the dialog needs about one email.
type Payload struct {
	Message     Message      `json:"message"`
	Attachments []Attachment `json:"attachments"`
}

// Load reads a session payload from an .eml or .json file.
func Load(path string) (*Payload, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoSessionData
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoSessionData, "%s", path)
		}
		return nil, errors.Wrap(err, "read session payload")
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(data, filepath.Dir(path))
	}
	return ParseEML(data)
}

// ParseEML parses a raw RFC 5322 message.
func ParseEML(data []byte) (*Payload, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoSessionData
	}
	env, err := enmime.ReadEnvelope(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "parse message")
	}

	msg := Message{
		Author:  env.GetHeader("From"),
		Subject: env.GetHeader("Subject"),
		Body:    env.Text,
		Raw:     data,
	}
	if addrs, err := env.AddressList("To"); err == nil {
		for _, addr := range addrs {
			msg.Recipients = append(msg.Recipients, formatAddress(addr))
		}
	}
	if date, err := netmail.ParseDate(env.GetHeader("Date")); err == nil {
		msg.Date = date
	}

	payload := &Payload{Message: msg}
	for i, part := range env.Attachments {
		name := strings.TrimSpace(part.FileName)
		if name == "" {
			name = "attachment-" + strconv.Itoa(i+1)
		}
		payload.Attachments = append(payload.Attachments, Attachment{
			Name:        name,
			Size:        int64(len(part.Content)),
			ContentType: part.ContentType,
			Content:     part.Content,
		})
	}
	return payload, nil
}

// DecodeJSON decodes the mail client's export format. Relative file paths
// are resolved against baseDir.
func DecodeJSON(data []byte, baseDir string) (*Payload, error) {
	var doc struct {
		EmailUploadData *Payload     `json:"emailUploadData"`
		Message         *Message     `json:"message"`
		Attachments     []Attachment `json:"attachments"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode session payload")
	}

	var payload *Payload
	switch {
	case doc.EmailUploadData != nil:
		payload = doc.EmailUploadData
	case doc.Message != nil:
		payload = &Payload{Message: *doc.Message, Attachments: doc.Attachments}
	default:
		return nil, ErrNoSessionData
	}

	if payload.Message.RawPath != "" {
		raw, err := os.ReadFile(resolvePath(baseDir, payload.Message.RawPath))
		if err != nil {
			return nil, errors.Wrap(err, "read raw message")
		}
		payload.Message.Raw = raw
	}
	for i := range payload.Attachments {
		att := &payload.Attachments[i]
		if att.Path == "" {
			continue
		}
		content, err := os.ReadFile(resolvePath(baseDir, att.Path))
		if err != nil {
			return nil, errors.Wrapf(err, "read attachment %q", att.Name)
		}
		att.Content = content
		if att.Size == 0 {
			att.Size = int64(len(content))
		}
	}
	return payload, nil
}

// RFC822 returns the message as an .eml document, building one from the
// known headers when the original bytes are not available.
func (m Message) RFC822() ([]byte, error) {
	if len(m.Raw) > 0 {
		return m.Raw, nil
	}

	subject := strings.TrimSpace(m.Subject)
	if subject == "" {
		subject = "(no subject)"
	}
	from := parseAddress(m.Author)
	builder := enmime.Builder().
		From(from.Name, from.Address).
		Subject(subject).
		Text([]byte(m.Body))
	if !m.Date.IsZero() {
		builder = builder.Date(m.Date)
	}
	if len(m.Recipients) == 0 {
		builder = builder.To("", "undisclosed-recipients@localhost")
	}
	for _, rcpt := range m.Recipients {
		to := parseAddress(rcpt)
		builder = builder.To(to.Name, to.Address)
	}

	part, err := builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build message")
	}
	var buf bytes.Buffer
	if err := part.Encode(&buf); err != nil {
		return nil, errors.Wrap(err, "encode message")
	}
	return buf.Bytes(), nil
}

// Filename is the name the message is uploaded under.
func (m Message) Filename() string {
	name := sanitizeFilename(m.Subject)
	if name == "" {
		name = "email"
	}
	return name + ".eml"
}

func parseAddress(raw string) *netmail.Address {
	raw = strings.TrimSpace(raw)
	if addr, err := netmail.ParseAddress(raw); err == nil {
		return addr
	}
	if strings.Contains(raw, "@") {
		return &netmail.Address{Address: raw}
	}
	return &netmail.Address{Name: raw, Address: "unknown@localhost"}
}

func formatAddress(addr *netmail.Address) string {
	if addr.Name == "" {
		return addr.Address
	}
	return addr.Name + " <" + addr.Address + ">"
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
	if len([]rune(s)) > 80 {
		s = string([]rune(s)[:80])
	}
	return strings.TrimSpace(s)
}
