package store

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
)

// ProjectStore is a store for projects. Mutations only ever touch rows owned
// by the given user.
type ProjectStore interface {
	CreateProject(ctx context.Context, h db.Handler, p models.Project) (models.Project, error)
	GetProjectByID(ctx context.Context, h db.Handler, id int64) (models.Project, error)
	ListProjects(ctx context.Context, h db.Handler, user int64) ([]models.Project, error)
	CountProjects(ctx context.Context, h db.Handler, user int64) (int64, error)
	UpdateProject(ctx context.Context, h db.Handler, p models.Project) (models.Project, error)
	DeleteProject(ctx context.Context, h db.Handler, user, id int64) error
}
