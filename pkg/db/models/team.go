package models

import (
	"database/sql"
	"time"

	"github.com/flowpro/flowpro/pkg/access"
)

// Team represents a team.
type Team struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	OwnerID     int64          `db:"owner_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// TeamMember represents a member of a team.
type TeamMember struct {
	ID        int64       `db:"id"`
	TeamID    int64       `db:"team_id"`
	UserID    int64       `db:"user_id"`
	Role      access.Role `db:"role"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

// TeamMembership is a team as seen by one of its members.
type TeamMembership struct {
	Team
	Role access.Role `db:"role"`
}

// MemberProfile is a team member joined with the member's user profile.
// Profile columns are null when the user row is missing.
type MemberProfile struct {
	TeamMember
	Email       sql.NullString `db:"email"`
	DisplayName sql.NullString `db:"display_name"`
}
