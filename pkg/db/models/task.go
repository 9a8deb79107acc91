package models

import (
	"database/sql"
	"time"
)

// Task represents a user's task.
type Task struct {
	ID          int64          `db:"id"`
	UserID      int64          `db:"user_id"`
	ProjectID   sql.NullInt64  `db:"project_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	DueDate     sql.NullTime   `db:"due_date"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`

	// Joined from projects when the project belongs to the same user.
	ProjectName  sql.NullString `db:"project_name"`
	ProjectColor sql.NullString `db:"project_color"`
}
