package backend

import (
	"context"
	"errors"

	"github.com/flowpro/flowpro/pkg/access"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/proto"
)

// teamRole loads the team and the actor's role in it. A missing team is
// reported as ErrTeamNotFound.
func (d *Backend) teamRole(ctx context.Context, h db.Handler, actor proto.User, teamID int64) (models.Team, access.Role, error) {
	t, err := d.store.GetTeamByID(ctx, h, teamID)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return models.Team{}, access.NotAMember, proto.ErrTeamNotFound
		}
		return models.Team{}, access.NotAMember, err
	}

	role, err := d.store.GetTeamMemberRole(ctx, h, teamID, actor.ID())
	if err != nil {
		return models.Team{}, access.NotAMember, db.WrapError(err)
	}

	return t, role, nil
}

// authorizeTeam loads the team and the actor's role in it, and checks the
// role with allowed. A missing team is reported as ErrTeamNotFound before
// the role is looked at.
func (d *Backend) authorizeTeam(ctx context.Context, h db.Handler, op string, actor proto.User, teamID int64, allowed func(access.Role) bool) (models.Team, access.Role, error) {
	t, role, err := d.teamRole(ctx, h, actor, teamID)
	if err != nil {
		return models.Team{}, access.NotAMember, err
	}

	if err := d.decide(op, actor, teamID, role, allowed(role)); err != nil {
		return models.Team{}, role, err
	}

	return t, role, nil
}

// decide records an authorization decision and returns ErrPermissionDenied
// when it is negative.
func (d *Backend) decide(op string, actor proto.User, teamID int64, role access.Role, ok bool) error {
	recordDecision(op, ok)
	if !ok {
		d.logger.Debug("permission denied", "op", op, "team", teamID, "user", actor.ID(), "role", role)
		return proto.ErrPermissionDenied
	}
	return nil
}

// AssertOwner checks that actor owns entity.
func AssertOwner(actor proto.User, entity proto.Owned) error {
	if actor == nil {
		return proto.ErrUnauthenticated
	}
	if entity.UserID() != actor.ID() {
		return proto.ErrPermissionDenied
	}
	return nil
}

func (d *Backend) assertOwner(op string, actor proto.User, entity proto.Owned) error {
	err := AssertOwner(actor, entity)
	recordDecision(op, err == nil)
	return err
}
