package store

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
)

// TeamStore is a store for teams.
type TeamStore interface {
	CreateTeam(ctx context.Context, h db.Handler, owner int64, name, description string) (models.Team, error)
	GetTeamByID(ctx context.Context, h db.Handler, id int64) (models.Team, error)
	ListTeamsForUser(ctx context.Context, h db.Handler, user int64) ([]models.TeamMembership, error)
	CountTeamsForUser(ctx context.Context, h db.Handler, user int64) (int64, error)
	DeleteTeamByID(ctx context.Context, h db.Handler, id int64) error
}
