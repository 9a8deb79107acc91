package database

import (
	"context"
	"strings"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/store"
)

var _ store.TaskStore = (*taskStore)(nil)

type taskStore struct{}

// The project is only joined when it belongs to the task's owner.
const taskSelect = `
	SELECT
	  t.*,
	  p.name AS project_name,
	  p.color AS project_color
	FROM
	  tasks t
	  LEFT JOIN projects p ON p.id = t.project_id
	  AND p.user_id = t.user_id
`

// CreateTask implements store.TaskStore.
func (s *taskStore) CreateTask(ctx context.Context, h db.Handler, t models.Task) (models.Task, error) {
	query := h.Rebind(`
		INSERT INTO
		  tasks (user_id, project_id, title, description, status, priority, due_date, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id
	`)
	var id int64
	if err := h.GetContext(ctx, &id, query, t.UserID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.DueDate); err != nil {
		return models.Task{}, err //nolint:wrapcheck
	}
	return s.GetTaskByID(ctx, h, id)
}

// GetTaskByID implements store.TaskStore.
func (*taskStore) GetTaskByID(ctx context.Context, h db.Handler, id int64) (models.Task, error) {
	var task models.Task
	err := h.GetContext(ctx, &task, h.Rebind(taskSelect+` WHERE t.id = ?`), id)
	return task, err //nolint:wrapcheck
}

// ListTasks implements store.TaskStore. Empty status and zero project match
// all tasks of the user.
func (*taskStore) ListTasks(ctx context.Context, h db.Handler, user int64, status string, project int64) ([]models.Task, error) {
	var sb strings.Builder
	sb.WriteString(taskSelect)
	sb.WriteString(` WHERE t.user_id = ?`)
	args := []any{user}
	if status != "" {
		sb.WriteString(` AND t.status = ?`)
		args = append(args, status)
	}
	if project != 0 {
		sb.WriteString(` AND t.project_id = ?`)
		args = append(args, project)
	}
	sb.WriteString(` ORDER BY t.created_at DESC, t.id DESC`)

	tasks := []models.Task{}
	err := h.SelectContext(ctx, &tasks, h.Rebind(sb.String()), args...)
	return tasks, err //nolint:wrapcheck
}

// CountTasks implements store.TaskStore. It counts either the completed
// tasks of the user or all the others.
func (*taskStore) CountTasks(ctx context.Context, h db.Handler, user int64, completed bool) (int64, error) {
	op := "<>"
	if completed {
		op = "="
	}
	var n int64
	query := h.Rebind(`SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status ` + op + ` 'completed'`)
	err := h.GetContext(ctx, &n, query, user)
	return n, err //nolint:wrapcheck
}

// UpdateTask implements store.TaskStore.
func (*taskStore) UpdateTask(ctx context.Context, h db.Handler, t models.Task) error {
	query := h.Rebind(`
		UPDATE
		  tasks
		SET
		  project_id = ?,
		  title = ?,
		  description = ?,
		  status = ?,
		  priority = ?,
		  due_date = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  id = ?
		  AND user_id = ?
	`)
	return affected(h.ExecContext(ctx, query, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.ID, t.UserID))
}

// DeleteTask implements store.TaskStore.
func (*taskStore) DeleteTask(ctx context.Context, h db.Handler, user, id int64) error {
	query := h.Rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`)
	return affected(h.ExecContext(ctx, query, id, user))
}
