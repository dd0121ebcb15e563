package service

// Remote task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// RemoteTask is a task as stored by the remote service.
type RemoteTask struct {
	ID     string
	Title  string
	Notes  string
	Status string // "needsAction" or "completed"
	Due    string // RFC 3339; the remote keeps the date only
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
