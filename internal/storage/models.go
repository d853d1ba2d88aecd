package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Document is a stored piece of extracted document text.
type Document struct {
	ID          string
	Title       string
	Content     string
	ContentType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Analysis is one processed query: the intent decision, the tier, and the
// full response envelope as JSON.
type Analysis struct {
	ID           string
	DocumentID   string
	UserQuery    string
	Action       string
	Confidence   float64
	Complexity   string
	EnvelopeJSON string
	CreatedAt    time.Time
}
