package store

import (
	"context"

	"github.com/flowpro/flowpro/pkg/access"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
)

// MemberStore is a store for team memberships.
type MemberStore interface {
	AddTeamMember(ctx context.Context, h db.Handler, team, user int64, role access.Role) (models.TeamMember, error)
	GetTeamMemberByID(ctx context.Context, h db.Handler, team, id int64) (models.TeamMember, error)
	GetTeamMemberRole(ctx context.Context, h db.Handler, team, user int64) (access.Role, error)
	GetMemberProfile(ctx context.Context, h db.Handler, team, id int64) (models.MemberProfile, error)
	ListTeamMembers(ctx context.Context, h db.Handler, team int64) ([]models.MemberProfile, error)
	CountTeamMembers(ctx context.Context, h db.Handler, team int64) (int64, error)
	UpdateTeamMemberRole(ctx context.Context, h db.Handler, team, id int64, role access.Role) error
	RemoveTeamMember(ctx context.Context, h db.Handler, team, id int64) error
	RemoveTeamMembers(ctx context.Context, h db.Handler, team int64) error
}
