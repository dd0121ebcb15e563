// Package task defines the to-do entity and its storage encoding.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Task is a single to-do item.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"dueDate,omitempty"`
}

// HasDue reports whether the task carries a due date.
func (t Task) HasDue() bool {
	return strings.TrimSpace(t.DueDate) != ""
}

// ISOLayout is the due date wire layout (millisecond precision, UTC).
const ISOLayout = "2006-01-02T15:04:05.000Z"

// DisplayLayout is the due date layout shown to users and accepted on input.
const DisplayLayout = "2006-01-02 15:04"

// ParseDue converts user input into the ISO due date stored with a task.
// Accepted forms: RFC 3339, "YYYY-MM-DD HH:MM" and "YYYY-MM-DD", the last
// two interpreted in loc. Empty input yields an empty due date.
func ParseDue(s string, loc *time.Location) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(ISOLayout), nil
	}
	for _, layout := range []string{DisplayLayout, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC().Format(ISOLayout), nil
		}
	}
	return "", fmt.Errorf("invalid due date: %s", s)
}

// FormatDue renders a stored due date in loc for display.
// Unparseable values are returned unchanged.
func FormatDue(due string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.Parse(time.RFC3339Nano, due)
	if err != nil {
		return due
	}
	return t.In(loc).Format(DisplayLayout)
}
