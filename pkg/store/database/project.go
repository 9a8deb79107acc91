package database

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/store"
)

var _ store.ProjectStore = (*projectStore)(nil)

type projectStore struct{}

// CreateProject implements store.ProjectStore.
func (*projectStore) CreateProject(ctx context.Context, h db.Handler, p models.Project) (models.Project, error) {
	query := h.Rebind(`
		INSERT INTO
		  projects (user_id, name, description, color, status, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING *
	`)
	var project models.Project
	err := h.GetContext(ctx, &project, query, p.UserID, p.Name, p.Description, p.Color, p.Status)
	return project, err //nolint:wrapcheck
}

// GetProjectByID implements store.ProjectStore.
func (*projectStore) GetProjectByID(ctx context.Context, h db.Handler, id int64) (models.Project, error) {
	var project models.Project
	err := h.GetContext(ctx, &project, h.Rebind(`SELECT * FROM projects WHERE id = ?`), id)
	return project, err //nolint:wrapcheck
}

// ListProjects implements store.ProjectStore.
func (*projectStore) ListProjects(ctx context.Context, h db.Handler, user int64) ([]models.Project, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  projects
		WHERE
		  user_id = ?
		ORDER BY
		  created_at DESC,
		  id DESC
	`)
	projects := []models.Project{}
	err := h.SelectContext(ctx, &projects, query, user)
	return projects, err //nolint:wrapcheck
}

// CountProjects implements store.ProjectStore.
func (*projectStore) CountProjects(ctx context.Context, h db.Handler, user int64) (int64, error) {
	var n int64
	err := h.GetContext(ctx, &n, h.Rebind(`SELECT COUNT(*) FROM projects WHERE user_id = ?`), user)
	return n, err //nolint:wrapcheck
}

// UpdateProject implements store.ProjectStore.
func (*projectStore) UpdateProject(ctx context.Context, h db.Handler, p models.Project) (models.Project, error) {
	query := h.Rebind(`
		UPDATE
		  projects
		SET
		  name = ?,
		  description = ?,
		  color = ?,
		  status = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  id = ?
		  AND user_id = ?
		RETURNING *
	`)
	var project models.Project
	err := h.GetContext(ctx, &project, query, p.Name, p.Description, p.Color, p.Status, p.ID, p.UserID)
	return project, err //nolint:wrapcheck
}

// DeleteProject implements store.ProjectStore.
func (*projectStore) DeleteProject(ctx context.Context, h db.Handler, user, id int64) error {
	query := h.Rebind(`DELETE FROM projects WHERE id = ? AND user_id = ?`)
	return affected(h.ExecContext(ctx, query, id, user))
}
