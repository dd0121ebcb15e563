// Package mirror pushes the local task list to a remote task service.
package mirror

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ltodo/internal/service"
	"ltodo/internal/task"
)

// MarkerPrefix tags remote tasks created by push with the local task id.
const MarkerPrefix = "ltodo-id:"

// Result counts the remote changes made by Push.
type Result struct {
	Created   int
	Updated   int
	Unchanged int
	Deleted   int

	// Duplicates counts extra remote tasks sharing a marker that were left
	// in place because Prune was off.
	Duplicates int
}

// Options controls Push.
type Options struct {
	// Prune deletes remote tasks whose marker no longer matches a local task,
	// and all but the first remote task carrying the same marker.
	Prune bool
}

// Push makes the remote list reflect local. Remote tasks without a marker
// are never touched.
func Push(ctx context.Context, svc service.Mirror, listID string, local []task.Task, opts Options) (Result, error) {
	var res Result

	remote, err := svc.ListTasks(ctx, listID)
	if err != nil {
		return res, fmt.Errorf("list remote tasks: %w", err)
	}

	byID := make(map[int64]service.RemoteTask)
	var dups []service.RemoteTask
	for _, rt := range remote {
		id, ok := ParseMarker(rt.Notes)
		if !ok {
			continue
		}
		if _, seen := byID[id]; seen {
			dups = append(dups, rt)
			continue
		}
		byID[id] = rt
	}

	keep := make(map[int64]bool, len(local))
	for _, t := range local {
		keep[t.ID] = true
		want := ToRemote(t)

		existing, ok := byID[t.ID]
		if !ok {
			if err := svc.CreateTask(ctx, listID, want); err != nil {
				return res, fmt.Errorf("create %q: %w", t.Text, err)
			}
			res.Created++
			continue
		}

		if sameContent(existing, want) {
			res.Unchanged++
			continue
		}
		want.ID = existing.ID
		if err := svc.UpdateTask(ctx, listID, want); err != nil {
			return res, fmt.Errorf("update %q: %w", t.Text, err)
		}
		res.Updated++
	}

	if !opts.Prune {
		res.Duplicates = len(dups)
		return res, nil
	}

	for _, rt := range dups {
		if err := svc.DeleteTask(ctx, listID, rt.ID); err != nil {
			return res, fmt.Errorf("delete %q: %w", rt.Title, err)
		}
		res.Deleted++
	}
	for id, rt := range byID {
		if keep[id] {
			continue
		}
		if err := svc.DeleteTask(ctx, listID, rt.ID); err != nil {
			return res, fmt.Errorf("delete %q: %w", rt.Title, err)
		}
		res.Deleted++
	}

	return res, nil
}

// ToRemote converts a local task to its remote form.
func ToRemote(t task.Task) service.RemoteTask {
	status := service.StatusNeedsAction
	if t.Completed {
		status = service.StatusCompleted
	}
	return service.RemoteTask{
		Title:  t.Text,
		Notes:  Marker(t.ID),
		Status: status,
		Due:    RemoteDue(t.DueDate),
	}
}

// Marker returns the notes marker for a local task id.
func Marker(id int64) string {
	return MarkerPrefix + strconv.FormatInt(id, 10)
}

// ParseMarker extracts the local id from remote notes.
func ParseMarker(notes string) (int64, bool) {
	for _, line := range strings.Split(notes, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, MarkerPrefix) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(line, MarkerPrefix), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// RemoteDue truncates a due date to midnight UTC, the only precision
// Google Tasks keeps.
func RemoteDue(due string) string {
	if strings.TrimSpace(due) == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, due)
	if err != nil {
		return ""
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(task.ISOLayout)
}

func sameContent(a, b service.RemoteTask) bool {
	return a.Title == b.Title && a.Status == b.Status && sameDue(a.Due, b.Due)
}

func sameDue(a, b string) bool {
	if a == "" || b == "" {
		return a == b
	}
	return RemoteDue(a) == RemoteDue(b)
}
