package proto

import "time"

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is an interface representing a task.
type Task interface {
	Owned
	// ID returns the task's ID.
	ID() int64
	// ProjectID returns the task's project ID, or 0 if it has none.
	ProjectID() int64
	// ProjectName returns the name of the task's project, if it has one.
	ProjectName() string
	// ProjectColor returns the color of the task's project, if it has one.
	ProjectColor() string
	// Title returns the task's title.
	Title() string
	// Description returns the task's description.
	Description() string
	// Status returns the task's status.
	Status() string
	// Priority returns the task's priority.
	Priority() string
	// DueDate returns the task's due date, or nil.
	DueDate() *time.Time
	// CreatedAt returns when the task was created.
	CreatedAt() time.Time
	// UpdatedAt returns when the task was last updated.
	UpdatedAt() time.Time
}

// TaskOptions are options for creating a task.
type TaskOptions struct {
	Title       string
	Description string
	Status      string
	Priority    string
	ProjectID   int64
	DueDate     *time.Time
}

// TaskUpdate holds the fields to change on a task. Nil fields are left
// untouched. A zero ProjectID detaches the task from its project.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	ProjectID    *int64
	DueDate      *time.Time
	ClearDueDate bool
}

// TaskFilter narrows a task listing. Zero values match everything.
type TaskFilter struct {
	Status    string
	ProjectID int64
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskCompleted:
		return true
	default:
		return false
	}
}

// ValidPriority reports whether s is a known task priority.
func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
