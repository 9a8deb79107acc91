package database

import (
	"context"
	"errors"

	"github.com/flowpro/flowpro/pkg/access"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/store"
)

var _ store.MemberStore = (*memberStore)(nil)

type memberStore struct{}

// AddTeamMember implements store.MemberStore.
func (*memberStore) AddTeamMember(ctx context.Context, h db.Handler, team, user int64, role access.Role) (models.TeamMember, error) {
	query := h.Rebind(`
		INSERT INTO
		  team_members (team_id, user_id, role, updated_at)
		VALUES
		  (?, ?, ?, CURRENT_TIMESTAMP) RETURNING *
	`)
	var m models.TeamMember
	err := h.GetContext(ctx, &m, query, team, user, role)
	return m, err //nolint:wrapcheck
}

// GetTeamMemberByID implements store.MemberStore. Members of other teams are
// not found.
func (*memberStore) GetTeamMemberByID(ctx context.Context, h db.Handler, team, id int64) (models.TeamMember, error) {
	query := h.Rebind(`SELECT * FROM team_members WHERE team_id = ? AND id = ?`)
	var m models.TeamMember
	err := h.GetContext(ctx, &m, query, team, id)
	return m, err //nolint:wrapcheck
}

// GetTeamMemberRole implements store.MemberStore. A user without a
// membership row has access.NotAMember.
func (*memberStore) GetTeamMemberRole(ctx context.Context, h db.Handler, team, user int64) (access.Role, error) {
	query := h.Rebind(`SELECT role FROM team_members WHERE team_id = ? AND user_id = ?`)
	var role access.Role
	if err := h.GetContext(ctx, &role, query, team, user); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return access.NotAMember, nil
		}
		return access.NotAMember, err //nolint:wrapcheck
	}
	return role, nil
}

const memberProfileSelect = `
	SELECT
	  tm.*,
	  u.email,
	  u.display_name
	FROM
	  team_members tm
	  LEFT JOIN users u ON u.id = tm.user_id
`

// GetMemberProfile implements store.MemberStore.
func (*memberStore) GetMemberProfile(ctx context.Context, h db.Handler, team, id int64) (models.MemberProfile, error) {
	query := h.Rebind(memberProfileSelect + `
		WHERE
		  tm.team_id = ?
		  AND tm.id = ?
	`)
	var m models.MemberProfile
	err := h.GetContext(ctx, &m, query, team, id)
	return m, err //nolint:wrapcheck
}

// ListTeamMembers implements store.MemberStore.
func (*memberStore) ListTeamMembers(ctx context.Context, h db.Handler, team int64) ([]models.MemberProfile, error) {
	query := h.Rebind(memberProfileSelect + `
		WHERE
		  tm.team_id = ?
		ORDER BY
		  tm.created_at ASC,
		  tm.id ASC
	`)
	members := []models.MemberProfile{}
	err := h.SelectContext(ctx, &members, query, team)
	return members, err //nolint:wrapcheck
}

// CountTeamMembers implements store.MemberStore.
func (*memberStore) CountTeamMembers(ctx context.Context, h db.Handler, team int64) (int64, error) {
	var n int64
	err := h.GetContext(ctx, &n, h.Rebind(`SELECT COUNT(*) FROM team_members WHERE team_id = ?`), team)
	return n, err //nolint:wrapcheck
}

// UpdateTeamMemberRole implements store.MemberStore. Owner rows are never
// matched.
func (*memberStore) UpdateTeamMemberRole(ctx context.Context, h db.Handler, team, id int64, role access.Role) error {
	query := h.Rebind(`
		UPDATE
		  team_members
		SET
		  role = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  team_id = ?
		  AND id = ?
		  AND role <> 'owner'
	`)
	return affected(h.ExecContext(ctx, query, role, team, id))
}

// RemoveTeamMember implements store.MemberStore. Owner rows are never
// matched.
func (*memberStore) RemoveTeamMember(ctx context.Context, h db.Handler, team, id int64) error {
	query := h.Rebind(`
		DELETE FROM team_members
		WHERE
		  team_id = ?
		  AND id = ?
		  AND role <> 'owner'
	`)
	return affected(h.ExecContext(ctx, query, team, id))
}

// RemoveTeamMembers implements store.MemberStore.
func (*memberStore) RemoveTeamMembers(ctx context.Context, h db.Handler, team int64) error {
	_, err := h.ExecContext(ctx, h.Rebind(`DELETE FROM team_members WHERE team_id = ?`), team)
	return err //nolint:wrapcheck
}
