package database

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/store"
)

var _ store.TeamStore = (*teamStore)(nil)

type teamStore struct{}

// CreateTeam implements store.TeamStore. The owner's membership is not
// created here.
func (*teamStore) CreateTeam(ctx context.Context, h db.Handler, owner int64, name, description string) (models.Team, error) {
	query := h.Rebind(`
		INSERT INTO
		  teams (name, description, owner_id, updated_at)
		VALUES
		  (?, ?, ?, CURRENT_TIMESTAMP) RETURNING *
	`)
	var team models.Team
	err := h.GetContext(ctx, &team, query, name, nullString(description), owner)
	return team, err //nolint:wrapcheck
}

// GetTeamByID implements store.TeamStore.
func (*teamStore) GetTeamByID(ctx context.Context, h db.Handler, id int64) (models.Team, error) {
	var team models.Team
	err := h.GetContext(ctx, &team, h.Rebind(`SELECT * FROM teams WHERE id = ?`), id)
	return team, err //nolint:wrapcheck
}

// ListTeamsForUser implements store.TeamStore.
func (*teamStore) ListTeamsForUser(ctx context.Context, h db.Handler, user int64) ([]models.TeamMembership, error) {
	query := h.Rebind(`
		SELECT
		  t.*,
		  tm.role
		FROM
		  teams t
		  JOIN team_members tm ON tm.team_id = t.id
		WHERE
		  tm.user_id = ?
		ORDER BY
		  t.created_at DESC,
		  t.id DESC
	`)
	teams := []models.TeamMembership{}
	err := h.SelectContext(ctx, &teams, query, user)
	return teams, err //nolint:wrapcheck
}

// CountTeamsForUser implements store.TeamStore.
func (*teamStore) CountTeamsForUser(ctx context.Context, h db.Handler, user int64) (int64, error) {
	var n int64
	err := h.GetContext(ctx, &n, h.Rebind(`SELECT COUNT(*) FROM team_members WHERE user_id = ?`), user)
	return n, err //nolint:wrapcheck
}

// DeleteTeamByID implements store.TeamStore.
func (*teamStore) DeleteTeamByID(ctx context.Context, h db.Handler, id int64) error {
	return affected(h.ExecContext(ctx, h.Rebind(`DELETE FROM teams WHERE id = ?`), id))
}
