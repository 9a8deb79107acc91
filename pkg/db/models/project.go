package models

import (
	"database/sql"
	"time"
)

// Project represents a user's project.
type Project struct {
	ID          int64          `db:"id"`
	UserID      int64          `db:"user_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Color       string         `db:"color"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
