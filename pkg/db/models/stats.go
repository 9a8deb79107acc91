package models

// Totals holds server-wide entity counts.
type Totals struct {
	Users     int64 `db:"users"`
	Teams     int64 `db:"teams"`
	Projects  int64 `db:"projects"`
	OpenTasks int64 `db:"open_tasks"`
}
