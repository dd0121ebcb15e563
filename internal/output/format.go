// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ltodo/internal/task"
)

const (
	// EmptyList is printed by list when there are no tasks.
	EmptyList = "no tasks"

	checkOpen = "[ ]"
	checkDone = "[x]"
)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  [ ] {TEXT}" followed by "  due {YYYY-MM-DD HH:MM}" when a
// due date is set.
func FormatTask(w io.Writer, num int, t task.Task, loc *time.Location) {
	check := checkOpen
	if t.Completed {
		check = checkDone
	}
	fmt.Fprintf(w, "%4d  %s %s", num, check, normalizeText(t.Text))
	if t.HasDue() {
		fmt.Fprintf(w, "  due %s", task.FormatDue(t.DueDate, loc))
	}
	fmt.Fprintln(w)
}

// normalizeText replaces newlines so a task always occupies one line.
// Empty or whitespace-only text becomes "(untitled)".
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
