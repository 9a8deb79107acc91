package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/proto"
)

// date is a due date sent either as a calendar day (2006-01-02) or as an
// RFC 3339 timestamp.
type date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d *date) ptr() *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Status      string `json:"status" validate:"omitempty,oneof=todo in_progress completed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	ProjectID   int64  `json:"project_id" validate:"gte=0"`
	DueDate     *date  `json:"due_date"`
}

type updateTaskRequest struct {
	Title        *string `json:"title" validate:"omitnil,required,max=200"`
	Description  *string `json:"description" validate:"omitnil,max=1000"`
	Status       *string `json:"status" validate:"omitnil,oneof=todo in_progress completed"`
	Priority     *string `json:"priority" validate:"omitnil,oneof=low medium high"`
	ProjectID    *int64  `json:"project_id" validate:"omitnil,gte=0"`
	DueDate      *date   `json:"due_date"`
	ClearDueDate bool    `json:"clear_due_date"`
}

func listTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := r.URL.Query().Get("status")
	projectID, err := queryID(r, "project_id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	tasks, err := be.ListTasks(ctx, proto.UserFromContext(ctx), proto.TaskFilter{
		Status:    status,
		ProjectID: projectID,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapViews(tasks, newTaskView))
}

func createTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	t, err := be.CreateTask(ctx, proto.UserFromContext(ctx), proto.TaskOptions{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
		DueDate:     req.DueDate.ptr(),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newTaskView(t))
}

func updateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "task")
	if err != nil {
		renderError(w, r, err)
		return
	}
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	t, err := be.UpdateTask(ctx, proto.UserFromContext(ctx), id, proto.TaskUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		ProjectID:    req.ProjectID,
		DueDate:      req.DueDate.ptr(),
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newTaskView(t))
}

func toggleTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "task")
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	t, err := be.ToggleTaskStatus(ctx, proto.UserFromContext(ctx), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newTaskView(t))
}

func deleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "task")
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	if err := be.DeleteTask(ctx, proto.UserFromContext(ctx), id); err != nil {
		renderError(w, r, err)
		return
	}

	renderNoContent(w)
}
