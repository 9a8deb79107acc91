package proto

import "time"

// Owned is implemented by entities that belong to exactly one user.
type Owned interface {
	// UserID returns the owning user's ID.
	UserID() int64
}

// Project statuses.
const (
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"
)

// DefaultProjectColor is the color of projects created without one.
const DefaultProjectColor = "#F59E0B"

// Project is an interface representing a project.
type Project interface {
	Owned
	// ID returns the project's ID.
	ID() int64
	// Name returns the project's name.
	Name() string
	// Description returns the project's description.
	Description() string
	// Color returns the project's color as #RRGGBB.
	Color() string
	// Status returns the project's status.
	Status() string
	// CreatedAt returns when the project was created.
	CreatedAt() time.Time
	// UpdatedAt returns when the project was last updated.
	UpdatedAt() time.Time
}

// ProjectOptions are options for creating a project.
type ProjectOptions struct {
	Name        string
	Description string
	Color       string
	Status      string
}

// ProjectUpdate holds the fields to change on a project. Nil fields are left
// untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Status      *string
}

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived:
		return true
	default:
		return false
	}
}
