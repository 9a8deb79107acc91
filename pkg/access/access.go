// Package access defines the roles a user can hold in a team.
package access

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"errors"
	"fmt"
)

// Role is the role a user holds in a team.
type Role int

const (
	// NotAMember is the role of a user without a membership row.
	NotAMember Role = iota

	// Member can view the team and its members.
	Member

	// Admin can additionally add, remove and re-role non-owner members.
	Admin

	// Owner can additionally delete the team. Every team has exactly one.
	Owner
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case NotAMember:
		return "none"
	case Member:
		return "member"
	case Admin:
		return "admin"
	case Owner:
		return "owner"
	default:
		return "unknown"
	}
}

// ParseRole parses a role string.
func ParseRole(s string) Role {
	switch s {
	case "none":
		return NotAMember
	case "member":
		return Member
	case "admin":
		return Admin
	case "owner":
		return Owner
	default:
		return Role(-1)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case NotAMember, Member, Admin, Owner:
		return true
	default:
		return false
	}
}

// Assignable reports whether r can be granted through membership
// management. The owner role is only ever set when a team is created.
func (r Role) Assignable() bool {
	switch r {
	case Member, Admin:
		return true
	case NotAMember, Owner:
		return false
	default:
		return false
	}
}

// CanManageMembers reports whether r may add, remove or re-role members.
func (r Role) CanManageMembers() bool {
	switch r {
	case Owner, Admin:
		return true
	case Member, NotAMember:
		return false
	default:
		return false
	}
}

// CanDeleteTeam reports whether r may delete the team.
func (r Role) CanDeleteTeam() bool {
	switch r {
	case Owner:
		return true
	case Admin, Member, NotAMember:
		return false
	default:
		return false
	}
}

// IsMember reports whether r grants any membership at all.
func (r Role) IsMember() bool {
	switch r {
	case Owner, Admin, Member:
		return true
	case NotAMember:
		return false
	default:
		return false
	}
}

var (
	_ encoding.TextMarshaler   = Role(0)
	_ encoding.TextUnmarshaler = (*Role)(nil)
	_ sql.Scanner              = (*Role)(nil)
	_ driver.Valuer            = Role(0)
)

// ErrInvalidRole is returned when an invalid role is provided.
var ErrInvalidRole = errors.New("invalid role")

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	l := ParseRole(string(text))
	if l < 0 {
		return ErrInvalidRole
	}

	*r = l

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}

// Scan implements sql.Scanner.
func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidRole, src)
	}
}

// Value implements driver.Valuer. Only stored roles have a value.
func (r Role) Value() (driver.Value, error) {
	switch r {
	case Member, Admin, Owner:
		return r.String(), nil
	case NotAMember:
		return nil, fmt.Errorf("%w: %s cannot be stored", ErrInvalidRole, r)
	default:
		return nil, ErrInvalidRole
	}
}
