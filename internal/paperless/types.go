package paperless

import (
	"encoding/json"
	"strconv"
	"time"
)

// page is the paginated list envelope.
type page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Correspondent is a sender or recipient documents are filed under.
type Correspondent struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	DocumentCount int    `json:"document_count,omitempty"`
}

// DocumentType classifies documents (invoice, letter, ...).
type DocumentType struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	DocumentCount int    `json:"document_count,omitempty"`
}

// Tag is a label attached to documents.
type Tag struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color,omitempty"`
	IsInboxTag    bool   `json:"is_inbox_tag,omitempty"`
	DocumentCount int    `json:"document_count,omitempty"`
}

// CreateTagInput defines the fields for creating a tag.
type CreateTagInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DocumentInput is one file handed to the consumer.
type DocumentInput struct {
	Filename      string
	ContentType   string
	Content       []byte
	Title         string
	Created       *time.Time
	Correspondent *int
	DocumentType  *int
	Tags          []int
}

// ID is an identifier the server may encode as a number or a string.
type ID string

func (i *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*i = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*i = ID(n.String())
		return nil
	}
	*i = ""
	return nil
}

// Int returns the numeric form of the id, if it has one.
func (i ID) Int() (int, bool) {
	n, err := strconv.Atoi(string(i))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Task states reported by the consumer.
const (
	TaskPending = "PENDING"
	TaskStarted = "STARTED"
	TaskSuccess = "SUCCESS"
	TaskFailure = "FAILURE"
	TaskRevoked = "REVOKED"
)

// Task is the consumption job created by an upload.
type Task struct {
	ID              int        `json:"id"`
	TaskID          string     `json:"task_id"`
	TaskFileName    string     `json:"task_file_name"`
	Status          string     `json:"status"`
	Result          *string    `json:"result"`
	Created         *time.Time `json:"date_created"`
	Done            *time.Time `json:"date_done"`
	RelatedDocument *ID        `json:"related_document"`
}

// Finished reports whether the task reached a terminal state.
func (t Task) Finished() bool {
	switch t.Status {
	case TaskSuccess, TaskFailure, TaskRevoked:
		return true
	}
	return false
}
