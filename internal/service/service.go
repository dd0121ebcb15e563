// Package service defines the backend-agnostic interface for mirroring tasks
// to a remote task service.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a list or task does not exist remotely.
var ErrNotFound = errors.New("not found")

// Mirror defines the remote operations used by push.
// All Google Tasks API calls go through this interface.
type Mirror interface {
	// ResolveList finds a list by name (case-insensitive, trimmed).
	// An empty name resolves to the default list.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task in a list, completed ones included.
	ListTasks(ctx context.Context, listID string) ([]RemoteTask, error)

	// CreateTask creates a task in the list.
	CreateTask(ctx context.Context, listID string, t RemoteTask) error

	// UpdateTask overwrites title, notes, status and due of an existing task.
	UpdateTask(ctx context.Context, listID string, t RemoteTask) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, listID, taskID string) error
}
