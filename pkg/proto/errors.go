package proto

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the backend wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	// ErrUnauthenticated is returned when no actor is present.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrPermissionDenied is returned when the actor's role or ownership is
	// insufficient for the operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrForbidden is returned when the operation is never allowed on the
	// target, whatever the actor's role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when the operation violates a uniqueness rule.
	ErrConflict = errors.New("conflict")
	// ErrValidation is returned when the input is malformed.
	ErrValidation = errors.New("validation failed")
)

var (
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = fmt.Errorf("team %w", ErrNotFound)
	// ErrMemberNotFound is returned when a team member is not found in the team.
	ErrMemberNotFound = fmt.Errorf("member %w", ErrNotFound)
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)
	// ErrMemberExists is returned when a user is already a member of a team.
	ErrMemberExists = fmt.Errorf("user is already a member of this team: %w", ErrConflict)
	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = fmt.Errorf("email already registered: %w", ErrConflict)
	// ErrOwnerImmutable is returned when removing or re-roling a team owner.
	ErrOwnerImmutable = fmt.Errorf("cannot change the team owner: %w", ErrForbidden)
	// ErrInvalidCredentials is returned when an email and password do not match.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
)

// ValidationError returns an error wrapping ErrValidation.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Kind returns the error kind err wraps, or nil if it wraps none.
func Kind(err error) error {
	for _, k := range []error{
		ErrUnauthenticated,
		ErrPermissionDenied,
		ErrForbidden,
		ErrNotFound,
		ErrConflict,
		ErrValidation,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
