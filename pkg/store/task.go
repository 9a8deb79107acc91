package store

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
)

// TaskStore is a store for tasks. Mutations only ever touch rows owned by
// the given user.
type TaskStore interface {
	CreateTask(ctx context.Context, h db.Handler, t models.Task) (models.Task, error)
	GetTaskByID(ctx context.Context, h db.Handler, id int64) (models.Task, error)
	ListTasks(ctx context.Context, h db.Handler, user int64, status string, project int64) ([]models.Task, error)
	CountTasks(ctx context.Context, h db.Handler, user int64, completed bool) (int64, error)
	UpdateTask(ctx context.Context, h db.Handler, t models.Task) error
	DeleteTask(ctx context.Context, h db.Handler, user, id int64) error
}
