package migrate

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
)

const (
	createProjectsTasksName    = "create projects tasks"
	createProjectsTasksVersion = 2
)

var createProjectsTasks = Migration{
	Name:    createProjectsTasksName,
	Version: createProjectsTasksVersion,
	Migrate: func(ctx context.Context, h db.Handler) error {
		return migrateUp(ctx, h, createProjectsTasksVersion, createProjectsTasksName)
	},
	Rollback: func(ctx context.Context, h db.Handler) error {
		return migrateDown(ctx, h, createProjectsTasksVersion, createProjectsTasksName)
	},
}
