package proto

// Dashboard holds a user's summary counters.
type Dashboard struct {
	Projects       int64 `json:"projects"`
	ActiveTasks    int64 `json:"active_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
	Teams          int64 `json:"teams"`
}

// Totals holds server-wide entity counts.
type Totals struct {
	Users     int64 `json:"users"`
	Teams     int64 `json:"teams"`
	Projects  int64 `json:"projects"`
	OpenTasks int64 `json:"open_tasks"`
}
