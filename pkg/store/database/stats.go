package database

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/store"
)

type statsStore struct{}

var _ store.StatsStore = (*statsStore)(nil)

// CountEntities implements store.StatsStore.
func (*statsStore) CountEntities(ctx context.Context, h db.Handler) (models.Totals, error) {
	var t models.Totals
	err := h.GetContext(ctx, &t, `
		SELECT
		  (SELECT COUNT(*) FROM users) AS users,
		  (SELECT COUNT(*) FROM teams) AS teams,
		  (SELECT COUNT(*) FROM projects) AS projects,
		  (SELECT COUNT(*) FROM tasks WHERE status <> 'completed') AS open_tasks
	`)
	return t, err //nolint:wrapcheck
}
