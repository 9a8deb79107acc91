package web

import (
	"net/http"

	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/proto"
)

type createProjectRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Status      string `json:"status" validate:"omitempty,oneof=active on_hold completed archived"`
}

type updateProjectRequest struct {
	Name        *string `json:"name" validate:"omitnil,required,max=100"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	Color       *string `json:"color" validate:"omitnil,hexcolor"`
	Status      *string `json:"status" validate:"omitnil,oneof=active on_hold completed archived"`
}

func listProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	projects, err := be.ListProjects(ctx, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapViews(projects, newProjectView))
}

func createProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	p, err := be.CreateProject(ctx, proto.UserFromContext(ctx), proto.ProjectOptions{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Status:      req.Status,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newProjectView(p))
}

func updateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "project")
	if err != nil {
		renderError(w, r, err)
		return
	}
	var req updateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	p, err := be.UpdateProject(ctx, proto.UserFromContext(ctx), id, proto.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Status:      req.Status,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newProjectView(p))
}

func deleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "project")
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	if err := be.DeleteProject(ctx, proto.UserFromContext(ctx), id); err != nil {
		renderError(w, r, err)
		return
	}

	renderNoContent(w)
}
