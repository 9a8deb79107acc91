package backend

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/proto"
)

// MaxTaskTitleLength is the maximum length of a task title in runes.
const MaxTaskTitleLength = 200

func validateTask(t models.Task) error {
	if t.Title == "" {
		return proto.ValidationError("task title is required")
	}
	if utf8.RuneCountInString(t.Title) > MaxTaskTitleLength {
		return proto.ValidationError("task title must be at most %d characters", MaxTaskTitleLength)
	}
	if err := validateDescription(t.Description.String); err != nil {
		return err
	}
	if !proto.ValidTaskStatus(t.Status) {
		return proto.ValidationError("invalid task status %q", t.Status)
	}
	if !proto.ValidPriority(t.Priority) {
		return proto.ValidationError("invalid task priority %q", t.Priority)
	}
	return nil
}

// taskProject checks that a task may be filed under project. Zero means no
// project. Projects of other users are reported as not found.
func (d *Backend) taskProject(ctx context.Context, h db.Handler, actor proto.User, id int64) (sql.NullInt64, error) {
	if id == 0 {
		return sql.NullInt64{}, nil
	}

	p, err := d.store.GetProjectByID(ctx, h, id)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return sql.NullInt64{}, proto.ErrProjectNotFound
		}
		return sql.NullInt64{}, err
	}
	if p.UserID != actor.ID() {
		return sql.NullInt64{}, proto.ErrProjectNotFound
	}

	return sql.NullInt64{Int64: id, Valid: true}, nil
}

// CreateTask creates a task owned by actor.
func (d *Backend) CreateTask(ctx context.Context, actor proto.User, opts proto.TaskOptions) (proto.Task, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	t := models.Task{
		UserID:      actor.ID(),
		Title:       strings.TrimSpace(opts.Title),
		Description: nullString(strings.TrimSpace(opts.Description)),
		Status:      opts.Status,
		Priority:    opts.Priority,
	}
	if t.Status == "" {
		t.Status = proto.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = proto.PriorityMedium
	}
	if opts.DueDate != nil {
		t.DueDate = sql.NullTime{Time: opts.DueDate.UTC(), Valid: true}
	}
	if err := validateTask(t); err != nil {
		return nil, err
	}

	var m models.Task
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		t.ProjectID, err = d.taskProject(ctx, tx, actor, opts.ProjectID)
		if err != nil {
			return err
		}

		m, err = d.store.CreateTask(ctx, tx, t)
		return db.WrapError(err)
	}); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			return nil, proto.ErrUserNotFound
		}
		return nil, err
	}

	return &task{t: m}, nil
}

// ListTasks lists actor's tasks, newest first. The filter only narrows the
// listing; it never widens it beyond actor's own tasks.
func (d *Backend) ListTasks(ctx context.Context, actor proto.User, filter proto.TaskFilter) ([]proto.Task, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}
	if filter.Status != "" && !proto.ValidTaskStatus(filter.Status) {
		return nil, proto.ValidationError("invalid task status %q", filter.Status)
	}

	ms, err := d.store.ListTasks(ctx, d.db, actor.ID(), filter.Status, filter.ProjectID)
	if err != nil {
		return nil, db.WrapError(err)
	}

	tasks := make([]proto.Task, 0, len(ms))
	for _, m := range ms {
		tasks = append(tasks, &task{t: m})
	}

	return tasks, nil
}

// UpdateTask changes the fields set in upd on one of actor's tasks.
func (d *Backend) UpdateTask(ctx context.Context, actor proto.User, id int64, upd proto.TaskUpdate) (proto.Task, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	return d.updateTask(ctx, "update_task", actor, id, func(ctx context.Context, h db.Handler, t *models.Task) error {
		if upd.Title != nil {
			t.Title = strings.TrimSpace(*upd.Title)
		}
		if upd.Description != nil {
			t.Description = nullString(strings.TrimSpace(*upd.Description))
		}
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		if upd.Priority != nil {
			t.Priority = *upd.Priority
		}
		switch {
		case upd.ClearDueDate:
			t.DueDate = sql.NullTime{}
		case upd.DueDate != nil:
			t.DueDate = sql.NullTime{Time: upd.DueDate.UTC(), Valid: true}
		}
		if upd.ProjectID != nil {
			pid, err := d.taskProject(ctx, h, actor, *upd.ProjectID)
			if err != nil {
				return err
			}
			t.ProjectID = pid
		}
		return nil
	})
}

// ToggleTaskStatus marks a completed task as todo and any other task as
// completed.
func (d *Backend) ToggleTaskStatus(ctx context.Context, actor proto.User, id int64) (proto.Task, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	return d.updateTask(ctx, "toggle_task", actor, id, func(_ context.Context, _ db.Handler, t *models.Task) error {
		switch t.Status {
		case proto.TaskCompleted:
			t.Status = proto.TaskTodo
		default:
			t.Status = proto.TaskCompleted
		}
		return nil
	})
}

func (d *Backend) updateTask(ctx context.Context, op string, actor proto.User, id int64, apply func(context.Context, db.Handler, *models.Task) error) (proto.Task, error) {
	var m models.Task
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		t, err := d.ownedTask(ctx, tx, op, actor, id)
		if err != nil {
			return err
		}

		if err := apply(ctx, tx, &t); err != nil {
			return err
		}
		if err := validateTask(t); err != nil {
			return err
		}

		if err := db.WrapError(d.store.UpdateTask(ctx, tx, t)); err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrTaskNotFound
			}
			return err
		}

		m, err = d.store.GetTaskByID(ctx, tx, id)
		return db.WrapError(err)
	}); err != nil {
		return nil, err
	}

	return &task{t: m}, nil
}

// DeleteTask deletes one of actor's tasks.
func (d *Backend) DeleteTask(ctx context.Context, actor proto.User, id int64) error {
	if actor == nil {
		return proto.ErrUnauthenticated
	}

	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.ownedTask(ctx, tx, "delete_task", actor, id); err != nil {
			return err
		}

		if err := db.WrapError(d.store.DeleteTask(ctx, tx, actor.ID(), id)); err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrTaskNotFound
			}
			return err
		}
		return nil
	})
}

func (d *Backend) ownedTask(ctx context.Context, h db.Handler, op string, actor proto.User, id int64) (models.Task, error) {
	t, err := d.store.GetTaskByID(ctx, h, id)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return models.Task{}, proto.ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if err := d.assertOwner(op, actor, &task{t: t}); err != nil {
		return models.Task{}, err
	}

	return t, nil
}

type task struct {
	t models.Task
}

var _ proto.Task = (*task)(nil)

// ID implements proto.Task.
func (t *task) ID() int64 {
	return t.t.ID
}

// UserID implements proto.Task.
func (t *task) UserID() int64 {
	return t.t.UserID
}

// ProjectID implements proto.Task.
func (t *task) ProjectID() int64 {
	return t.t.ProjectID.Int64
}

// ProjectName implements proto.Task.
func (t *task) ProjectName() string {
	return t.t.ProjectName.String
}

// ProjectColor implements proto.Task.
func (t *task) ProjectColor() string {
	return t.t.ProjectColor.String
}

// Title implements proto.Task.
func (t *task) Title() string {
	return t.t.Title
}

// Description implements proto.Task.
func (t *task) Description() string {
	return t.t.Description.String
}

// Status implements proto.Task.
func (t *task) Status() string {
	return t.t.Status
}

// Priority implements proto.Task.
func (t *task) Priority() string {
	return t.t.Priority
}

// DueDate implements proto.Task.
func (t *task) DueDate() *time.Time {
	if !t.t.DueDate.Valid {
		return nil
	}
	due := t.t.DueDate.Time
	return &due
}

// CreatedAt implements proto.Task.
func (t *task) CreatedAt() time.Time {
	return t.t.CreatedAt
}

// UpdatedAt implements proto.Task.
func (t *task) UpdatedAt() time.Time {
	return t.t.UpdatedAt
}
