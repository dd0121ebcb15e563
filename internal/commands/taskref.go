package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ltodo/internal/store"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num  int   // 1-based position as printed by list
	ID   int64 // task id, set when ByID
	ByID bool  // true if the reference was #<id>
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. All digits → position in the list (e.g., 3)
// 2. '#' followed by digits → task id (e.g., #1718000000000)
// 3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}

	ref := args[0]

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{Num: num}, nil
	}

	if rest, ok := strings.CutPrefix(ref, "#"); ok && isAllDigits(rest) {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{ID: id, ByID: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTaskRef maps a reference to a task id.
// Positions must be within the list; ids are passed through unchecked so an
// unknown id stays a no-op for the store.
func ResolveTaskRef(st *store.Store, ref TaskRef) (int64, error) {
	if ref.ByID {
		return ref.ID, nil
	}
	tasks := st.Tasks()
	if ref.Num < 1 || ref.Num > len(tasks) {
		return 0, fmt.Errorf("task number out of range: %d", ref.Num)
	}
	return tasks[ref.Num-1].ID, nil
}
