package backend

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/flowpro/flowpro/pkg/access"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/proto"
)

const (
	// MaxTeamNameLength is the maximum length of a team name in runes.
	MaxTeamNameLength = 100
	// MaxDescriptionLength is the maximum length of a description in runes.
	MaxDescriptionLength = 1000
)

func validateDescription(s string) error {
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return proto.ValidationError("description must be at most %d characters", MaxDescriptionLength)
	}
	return nil
}

// CreateTeam creates a team owned by actor. The team and the owner's
// membership are created together.
func (d *Backend) CreateTeam(ctx context.Context, actor proto.User, name, description string) (proto.Team, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, proto.ValidationError("team name is required")
	}
	if utf8.RuneCountInString(name) > MaxTeamNameLength {
		return nil, proto.ValidationError("team name must be at most %d characters", MaxTeamNameLength)
	}
	description = strings.TrimSpace(description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	var m models.Team
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.CreateTeam(ctx, tx, actor.ID(), name, description)
		if err != nil {
			return db.WrapError(err)
		}

		_, err = d.store.AddTeamMember(ctx, tx, m.ID, actor.ID(), access.Owner)
		return db.WrapError(err)
	}); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			return nil, proto.ErrUserNotFound
		}
		return nil, err
	}

	d.logger.Info("team created", "team", m.ID, "owner", actor.ID())
	return &team{t: m}, nil
}

// DeleteTeam deletes a team and all of its memberships. Only the owner may
// delete a team.
func (d *Backend) DeleteTeam(ctx context.Context, actor proto.User, teamID int64) error {
	if actor == nil {
		return proto.ErrUnauthenticated
	}

	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, _, err := d.authorizeTeam(ctx, tx, "delete_team", actor, teamID, access.Role.CanDeleteTeam); err != nil {
			return err
		}

		// Memberships go first so the delete does not rely on cascading
		// foreign keys.
		if err := d.store.RemoveTeamMembers(ctx, tx, teamID); err != nil {
			return db.WrapError(err)
		}

		return db.WrapError(d.store.DeleteTeamByID(ctx, tx, teamID))
	}); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrTeamNotFound
		}
		return err
	}

	d.logger.Info("team deleted", "team", teamID, "by", actor.ID())
	return nil
}

// ResolveRole returns actor's role in a team. Users without a membership,
// including for teams that do not exist, get access.NotAMember.
func (d *Backend) ResolveRole(ctx context.Context, actor proto.User, teamID int64) (access.Role, error) {
	if actor == nil {
		return access.NotAMember, proto.ErrUnauthenticated
	}

	role, err := d.store.GetTeamMemberRole(ctx, d.db, teamID, actor.ID())
	if err != nil {
		return access.NotAMember, db.WrapError(err)
	}

	return role, nil
}

// ListTeamsForUser lists the teams actor belongs to, newest first, with
// actor's role and each team's member count. Counts are read after the
// listing and may not reflect memberships committed in between.
func (d *Backend) ListTeamsForUser(ctx context.Context, actor proto.User) ([]proto.TeamMembership, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	ms, err := d.store.ListTeamsForUser(ctx, d.db, actor.ID())
	if err != nil {
		return nil, db.WrapError(err)
	}

	teams := make([]proto.TeamMembership, 0, len(ms))
	for _, m := range ms {
		count, err := d.store.CountTeamMembers(ctx, d.db, m.ID)
		if err != nil {
			return nil, db.WrapError(err)
		}
		teams = append(teams, &membership{team: team{t: m.Team}, role: m.Role, count: count})
	}

	return teams, nil
}

// GetTeam returns a team as seen by actor, who must be a member.
func (d *Backend) GetTeam(ctx context.Context, actor proto.User, teamID int64) (proto.TeamMembership, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	t, role, err := d.authorizeTeam(ctx, d.db, "get_team", actor, teamID, access.Role.IsMember)
	if err != nil {
		return nil, err
	}

	count, err := d.store.CountTeamMembers(ctx, d.db, teamID)
	if err != nil {
		return nil, db.WrapError(err)
	}

	return &membership{team: team{t: t}, role: role, count: count}, nil
}

type team struct {
	t models.Team
}

var _ proto.Team = (*team)(nil)

// ID implements proto.Team.
func (t *team) ID() int64 {
	return t.t.ID
}

// Name implements proto.Team.
func (t *team) Name() string {
	return t.t.Name
}

// Description implements proto.Team.
func (t *team) Description() string {
	return t.t.Description.String
}

// OwnerID implements proto.Team.
func (t *team) OwnerID() int64 {
	return t.t.OwnerID
}

// CreatedAt implements proto.Team.
func (t *team) CreatedAt() time.Time {
	return t.t.CreatedAt
}

// UpdatedAt implements proto.Team.
func (t *team) UpdatedAt() time.Time {
	return t.t.UpdatedAt
}

type membership struct {
	team
	role  access.Role
	count int64
}

var _ proto.TeamMembership = (*membership)(nil)

// Role implements proto.TeamMembership.
func (m *membership) Role() access.Role {
	return m.role
}

// MemberCount implements proto.TeamMembership.
func (m *membership) MemberCount() int64 {
	return m.count
}
