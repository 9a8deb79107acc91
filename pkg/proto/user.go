// Package proto defines the domain types exchanged between the backend and
// its transports.
package proto

import "time"

// User is an interface representing a user.
type User interface {
	// ID returns the user's ID.
	ID() int64
	// Email returns the user's email address.
	Email() string
	// DisplayName returns the user's display name, which may be empty.
	DisplayName() string
	// Password returns the user's password hash.
	Password() string
	// CreatedAt returns when the user signed up.
	CreatedAt() time.Time
}

// UserOptions are options for creating a user.
type UserOptions struct {
	// DisplayName is the user's display name.
	DisplayName string
	// Password is the plain text password. An empty password creates a user
	// that cannot log in with a password.
	Password string
}

// ProfileUpdate holds the profile fields to change. Nil fields are left
// untouched.
type ProfileUpdate struct {
	DisplayName *string
	// Password is the new plain text password.
	Password *string
}
