package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ltodo/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeMirror is an in-memory implementation of service.Mirror for testing.
type FakeMirror struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  map[string][]service.RemoteTask // listID -> tasks
	nextID int

	// Error injection for testing
	ResolveListErr error
	ListTasksErr   error
	CreateTaskErr  error
	UpdateTaskErr  error
	DeleteTaskErr  error
}

// NewFakeMirror creates a new FakeMirror with a default list.
func NewFakeMirror() *FakeMirror {
	return &FakeMirror{
		lists: []service.TaskList{
			{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
		},
		tasks: map[string][]service.RemoteTask{DefaultListID: nil},
	}
}

// AddList adds a list to the fake mirror.
func (f *FakeMirror) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// AddTask seeds a remote task.
func (f *FakeMirror) AddTask(listID string, t service.RemoteTask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = f.newID()
	}
	f.tasks[listID] = append(f.tasks[listID], t)
}

// Tasks returns a copy of the tasks in a list.
func (f *FakeMirror) Tasks(listID string) []service.RemoteTask {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.RemoteTask, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

// ResolveList implements service.Mirror.
func (f *FakeMirror) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	var matches []service.TaskList
	for _, l := range f.lists {
		if name == "" && l.IsDefault {
			return l, nil
		}
		if name != "" && strings.ToLower(strings.TrimSpace(l.Title)) == name {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list not found: %s", name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("ambiguous list name: %s", name)
	}
}

// ListTasks implements service.Mirror.
func (f *FakeMirror) ListTasks(ctx context.Context, listID string) ([]service.RemoteTask, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}
	out := make([]service.RemoteTask, len(tasks))
	copy(out, tasks)
	return out, nil
}

// CreateTask implements service.Mirror.
func (f *FakeMirror) CreateTask(ctx context.Context, listID string, t service.RemoteTask) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[listID]; !ok {
		return service.ErrNotFound
	}
	t.ID = f.newID()
	f.tasks[listID] = append(f.tasks[listID], t)
	return nil
}

// UpdateTask implements service.Mirror.
func (f *FakeMirror) UpdateTask(ctx context.Context, listID string, t service.RemoteTask) error {
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.tasks[listID] {
		if existing.ID == t.ID {
			f.tasks[listID][i] = t
			return nil
		}
	}
	return service.ErrNotFound
}

// DeleteTask implements service.Mirror.
func (f *FakeMirror) DeleteTask(ctx context.Context, listID, taskID string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := f.tasks[listID]
	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// newID must be called with f.mu held.
func (f *FakeMirror) newID() string {
	f.nextID++
	return fmt.Sprintf("remote-%d", f.nextID)
}
