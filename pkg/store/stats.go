package store

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
)

// StatsStore reports server-wide entity counts.
type StatsStore interface {
	CountEntities(ctx context.Context, h db.Handler) (models.Totals, error)
}
