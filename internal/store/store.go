// Package store owns the task list and mirrors it to a storage slot after
// every committed change.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"ltodo/internal/config"
	"ltodo/internal/logging"
	"ltodo/internal/storage"
	"ltodo/internal/task"
)

// Store is the single owner of the in-memory task list.
// It is not safe for concurrent use.
type Store struct {
	storage storage.Storage
	key     string
	now     func() time.Time
	logger  *log.Logger

	tasks  []task.Task
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage slot name.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithClock sets the clock used to seed task ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an empty store persisting to st. Call Load to read existing data.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage: st,
		key:     config.DefaultKey,
		now:     time.Now,
		logger:  logging.Discard(),
		tasks:   []task.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLogger replaces the logger and returns the previous one.
func (s *Store) SetLogger(logger *log.Logger) *log.Logger {
	prev := s.logger
	s.logger = logger
	return prev
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.storage.Close()
}

// Key returns the storage slot name.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory list with the persisted one.
// A missing slot, a read failure or undecodable contents all yield an empty list.
func (s *Store) Load(ctx context.Context) []task.Task {
	s.tasks = s.read(ctx)
	s.lastID = 0
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s.Tasks()
}

func (s *Store) read(ctx context.Context) []task.Task {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("no stored tasks", "key", s.key)
		} else {
			s.logger.Warn("read stored tasks", "key", s.key, "err", err)
		}
		return []task.Task{}
	}

	tasks, err := task.Decode([]byte(raw))
	if err != nil {
		s.logger.Warn("discarding stored tasks", "key", s.key, "err", err)
		return []task.Task{}
	}
	s.logger.Debug("loaded tasks", "key", s.key, "count", len(tasks))
	return tasks
}

// Tasks returns a copy of the list in display order.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id int64) (task.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// Add appends a task built from the trimmed text and persists the list.
// Whitespace-only text is a no-op: nothing is created or written and
// added is false.
func (s *Store) Add(ctx context.Context, rawText, dueDate string) (t task.Task, added bool, err error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return task.Task{}, false, nil
	}

	t = task.Task{
		ID:      s.nextID(),
		Text:    text,
		DueDate: dueDate,
	}
	s.tasks = append(s.tasks, t)
	s.logger.Debug("task added", "id", t.ID)

	if err := s.Persist(ctx); err != nil {
		return t, true, err
	}
	return t, true, nil
}

// Toggle flips the completed flag of the task with id and persists the list.
// An unknown id is a no-op.
func (s *Store) Toggle(ctx context.Context, id int64) error {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("toggle of unknown task", "id", id)
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Debug("task toggled", "id", id, "completed", s.tasks[i].Completed)
	return s.Persist(ctx)
}

// Delete removes the task with id, keeping the order of the rest, and
// persists the list. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("delete of unknown task", "id", id)
		return nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.logger.Debug("task deleted", "id", id)
	return s.Persist(ctx)
}

// Persist writes the full list to the storage slot, overwriting it.
func (s *Store) Persist(ctx context.Context) error {
	data, err := task.Encode(s.tasks)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

func (s *Store) index(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID returns the current time in milliseconds, bumped past the last
// issued id so two adds within one clock tick never collide.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
