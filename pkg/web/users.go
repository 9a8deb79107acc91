package web

import (
	"net/http"

	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/proto"
)

type updateMeRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	Password    *string `json:"password" validate:"omitempty,min=6,max=59"`
}

func getMe(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, newUserView(proto.UserFromContext(r.Context())))
}

func patchMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := proto.UserFromContext(ctx)
	var req updateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	user, err := be.UpdateProfile(ctx, actor, proto.ProfileUpdate{
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newUserView(user))
}

func getDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	d, err := be.Dashboard(ctx, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, d)
}

// searchUsers finds the first user whose email contains the email query
// parameter.
func searchUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user, err := be.FindUserByEmailFragment(ctx, r.URL.Query().Get("email"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newUserView(user))
}
