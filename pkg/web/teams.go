package web

import (
	"net/http"

	"github.com/flowpro/flowpro/pkg/access"
	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/proto"
)

type createTeamRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type addMemberRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Role   string `json:"role" validate:"required,oneof=member admin"`
}

type updateMemberRequest struct {
	Role string `json:"role" validate:"required,oneof=member admin"`
}

type roleResponse struct {
	Role string `json:"role"`
}

func listTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	teams, err := be.ListTeamsForUser(ctx, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapViews(teams, func(t proto.TeamMembership) teamView {
		return newTeamView(t)
	}))
}

func createTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	actor := proto.UserFromContext(ctx)
	t, err := be.CreateTeam(ctx, actor, req.Name, req.Description)
	if err != nil {
		renderError(w, r, err)
		return
	}

	// Read the team back to report the creator's role and the member count.
	m, err := be.GetTeam(ctx, actor, t.ID())
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newTeamView(m))
}

func getTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID, err := pathID(r, "team")
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	t, err := be.GetTeam(ctx, proto.UserFromContext(ctx), teamID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newTeamView(t))
}

func deleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID, err := pathID(r, "team")
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	if err := be.DeleteTeam(ctx, proto.UserFromContext(ctx), teamID); err != nil {
		renderError(w, r, err)
		return
	}

	renderNoContent(w)
}

func getRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID, err := pathID(r, "team")
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	role, err := be.ResolveRole(ctx, proto.UserFromContext(ctx), teamID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, roleResponse{Role: role.String()})
}

func listMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID, err := pathID(r, "team")
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	members, err := be.ListMembers(ctx, proto.UserFromContext(ctx), teamID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapViews(members, newMemberView))
}

func addMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID, err := pathID(r, "team")
	if err != nil {
		renderError(w, r, err)
		return
	}
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	m, err := be.AddMember(ctx, proto.UserFromContext(ctx), teamID, req.UserID, access.ParseRole(req.Role))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newMemberView(m))
}

func updateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID, err := pathID(r, "team")
	if err != nil {
		renderError(w, r, err)
		return
	}
	memberID, err := pathID(r, "member")
	if err != nil {
		renderError(w, r, err)
		return
	}
	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	m, err := be.UpdateMemberRole(ctx, proto.UserFromContext(ctx), teamID, memberID, access.ParseRole(req.Role))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newMemberView(m))
}

func removeMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID, err := pathID(r, "team")
	if err != nil {
		renderError(w, r, err)
		return
	}
	memberID, err := pathID(r, "member")
	if err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	if err := be.RemoveMember(ctx, proto.UserFromContext(ctx), teamID, memberID); err != nil {
		renderError(w, r, err)
		return
	}

	renderNoContent(w)
}
