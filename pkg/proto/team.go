package proto

import (
	"time"

	"github.com/flowpro/flowpro/pkg/access"
)

// Team is an interface representing a team.
type Team interface {
	// ID returns the team's ID.
	ID() int64
	// Name returns the team's name.
	Name() string
	// Description returns the team's description.
	Description() string
	// OwnerID returns the ID of the user that owns the team.
	OwnerID() int64
	// CreatedAt returns when the team was created.
	CreatedAt() time.Time
	// UpdatedAt returns when the team was last updated.
	UpdatedAt() time.Time
}

// TeamMembership is a team as seen by one of its members.
type TeamMembership interface {
	Team
	// Role returns the viewing user's role in the team.
	Role() access.Role
	// MemberCount returns the number of members in the team. It is computed
	// separately from the listing and may lag concurrent changes.
	MemberCount() int64
}

// Member is an interface representing a team member.
type Member interface {
	// ID returns the membership ID.
	ID() int64
	// TeamID returns the team's ID.
	TeamID() int64
	// UserID returns the member's user ID.
	UserID() int64
	// Role returns the member's role.
	Role() access.Role
	// Email returns the member's email, empty if the profile is missing.
	Email() string
	// DisplayName returns the member's display name.
	DisplayName() string
	// CreatedAt returns when the member joined.
	CreatedAt() time.Time
}

// UnknownUserName is the display name of members without a profile name.
const UnknownUserName = "Unknown User"
