// Package store defines the persistence interfaces used by the backend.
package store

// Store is an interface for managing users, teams, projects and tasks.
type Store interface {
	UserStore
	TeamStore
	MemberStore
	ProjectStore
	TaskStore
	StatsStore
}
