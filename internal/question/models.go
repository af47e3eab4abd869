package question

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Status is the moderation state of a question.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAnswered Status = "answered"
	StatusArchived Status = "archived"
)

const (
	MinContentLength = 2
	MaxContentLength = 1000
)

// Question is a single anonymously submitted text item.
type Question struct {
	ID        int64     `json:"id" bson:"_id"`
	Content   string    `json:"content" bson:"content"`
	Status    Status    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Filter narrows a listing. A nil Status lists every question.
type Filter struct {
	Status *Status
}

// Valid reports whether s is one of the three moderation states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAnswered, StatusArchived:
		return true
	}
	return false
}

// ParseStatus converts raw input into a Status, rejecting anything outside the enum.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// NormalizeContent trims surrounding whitespace and enforces the length bounds,
// counted in characters rather than bytes.
func NormalizeContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(content)
	if n < MinContentLength || n > MaxContentLength {
		return "", ErrInvalidContent
	}
	return content, nil
}
