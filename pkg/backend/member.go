package backend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/flowpro/flowpro/pkg/access"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/proto"
)

// AddMember adds a user to a team with the given role. Only owners and
// admins may add members, and the owner role cannot be granted.
func (d *Backend) AddMember(ctx context.Context, actor proto.User, teamID, userID int64, role access.Role) (proto.Member, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}
	if !role.Assignable() {
		return nil, proto.ValidationError("role must be %s or %s", access.Member, access.Admin)
	}

	var m models.MemberProfile
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, _, err := d.authorizeTeam(ctx, tx, "add_member", actor, teamID, access.Role.CanManageMembers); err != nil {
			return err
		}

		if _, err := d.store.GetUserByID(ctx, tx, userID); err != nil {
			err = db.WrapError(err)
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrUserNotFound
			}
			return err
		}

		tm, err := d.store.AddTeamMember(ctx, tx, teamID, userID, role)
		if err != nil {
			err = db.WrapError(err)
			if errors.Is(err, db.ErrDuplicateKey) {
				return proto.ErrMemberExists
			}
			return err
		}

		m, err = d.store.GetMemberProfile(ctx, tx, teamID, tm.ID)
		return db.WrapError(err)
	}); err != nil {
		return nil, err
	}

	d.logger.Info("member added", "team", teamID, "user", userID, "role", role, "by", actor.ID())
	return &member{m: m}, nil
}

// RemoveMember removes a membership from a team. Only owners and admins may
// remove members, and the owner can never be removed.
func (d *Backend) RemoveMember(ctx context.Context, actor proto.User, teamID, memberID int64) error {
	if actor == nil {
		return proto.ErrUnauthenticated
	}

	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.targetMember(ctx, tx, "remove_member", actor, teamID, memberID); err != nil {
			return err
		}

		if err := db.WrapError(d.store.RemoveTeamMember(ctx, tx, teamID, memberID)); err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrMemberNotFound
			}
			return err
		}

		return nil
	}); err != nil {
		return err
	}

	d.logger.Info("member removed", "team", teamID, "member", memberID, "by", actor.ID())
	return nil
}

// UpdateMemberRole changes the role of a team member. It follows the same
// rules as RemoveMember, and the owner role cannot be granted.
func (d *Backend) UpdateMemberRole(ctx context.Context, actor proto.User, teamID, memberID int64, role access.Role) (proto.Member, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}
	if !role.Assignable() {
		return nil, proto.ValidationError("role must be %s or %s", access.Member, access.Admin)
	}

	var m models.MemberProfile
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.targetMember(ctx, tx, "update_member_role", actor, teamID, memberID); err != nil {
			return err
		}

		if err := db.WrapError(d.store.UpdateTeamMemberRole(ctx, tx, teamID, memberID, role)); err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrMemberNotFound
			}
			return err
		}

		var err error
		m, err = d.store.GetMemberProfile(ctx, tx, teamID, memberID)
		return db.WrapError(err)
	}); err != nil {
		return nil, err
	}

	d.logger.Info("member role updated", "team", teamID, "member", memberID, "role", role, "by", actor.ID())
	return &member{m: m}, nil
}

// targetMember authorizes actor to manage a membership of the team and
// loads it. Non-members are turned away before the target is looked at. The
// owner's membership is immutable whatever the actor's role, and only then
// must the actor be allowed to manage members.
func (d *Backend) targetMember(ctx context.Context, h db.Handler, op string, actor proto.User, teamID, memberID int64) (models.TeamMember, error) {
	_, role, err := d.teamRole(ctx, h, actor, teamID)
	if err != nil {
		return models.TeamMember{}, err
	}
	if !role.IsMember() {
		return models.TeamMember{}, d.decide(op, actor, teamID, role, false)
	}

	tm, err := d.store.GetTeamMemberByID(ctx, h, teamID, memberID)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return models.TeamMember{}, proto.ErrMemberNotFound
		}
		return models.TeamMember{}, err
	}

	switch tm.Role {
	case access.Owner:
		recordDecision(op, false)
		return models.TeamMember{}, proto.ErrOwnerImmutable
	case access.Admin, access.Member:
	default:
		return models.TeamMember{}, access.ErrInvalidRole
	}

	if err := d.decide(op, actor, teamID, role, role.CanManageMembers()); err != nil {
		return models.TeamMember{}, err
	}

	return tm, nil
}

// ListMembers lists the members of a team in the order they joined. Only
// members of the team may list it.
func (d *Backend) ListMembers(ctx context.Context, actor proto.User, teamID int64) ([]proto.Member, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	if _, _, err := d.authorizeTeam(ctx, d.db, "list_members", actor, teamID, access.Role.IsMember); err != nil {
		return nil, err
	}

	ms, err := d.store.ListTeamMembers(ctx, d.db, teamID)
	if err != nil {
		return nil, db.WrapError(err)
	}

	members := make([]proto.Member, 0, len(ms))
	for _, m := range ms {
		members = append(members, &member{m: m})
	}

	return members, nil
}

type member struct {
	m models.MemberProfile
}

var _ proto.Member = (*member)(nil)

// ID implements proto.Member.
func (m *member) ID() int64 {
	return m.m.ID
}

// TeamID implements proto.Member.
func (m *member) TeamID() int64 {
	return m.m.TeamID
}

// UserID implements proto.Member.
func (m *member) UserID() int64 {
	return m.m.UserID
}

// Role implements proto.Member.
func (m *member) Role() access.Role {
	return m.m.Role
}

// Email implements proto.Member.
func (m *member) Email() string {
	return m.m.Email.String
}

// DisplayName implements proto.Member. Members without a profile name are
// shown as proto.UnknownUserName.
func (m *member) DisplayName() string {
	if name := strings.TrimSpace(m.m.DisplayName.String); name != "" {
		return name
	}
	return proto.UnknownUserName
}

// CreatedAt implements proto.Member.
func (m *member) CreatedAt() time.Time {
	return m.m.CreatedAt
}
