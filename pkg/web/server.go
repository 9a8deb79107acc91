// Package web serves the FlowPro HTTP/JSON API.
package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter returns a new HTTP router.
func NewRouter(ctx context.Context) http.Handler {
	logger := log.FromContext(ctx).WithPrefix("http")
	router := mux.NewRouter()

	HealthController(ctx, router)

	// Public auth routes must be registered before the authenticated /api
	// subrouter.
	AuthController(ctx, router)
	APIController(ctx, router)

	router.PathPrefix("/").HandlerFunc(renderNotFound)

	h := NewLoggingMiddleware(router, logger)
	h = NewContextHandler(ctx)(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler()(h)

	return h
}

// APIController registers the authenticated API routes.
func APIController(_ context.Context, r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(withUser)

	api.HandleFunc("/me", getMe).Methods(http.MethodGet)
	api.HandleFunc("/me", patchMe).Methods(http.MethodPatch)
	api.HandleFunc("/dashboard", getDashboard).Methods(http.MethodGet)
	api.HandleFunc("/users/search", searchUsers).Methods(http.MethodGet)

	api.HandleFunc("/teams", listTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams", createTeam).Methods(http.MethodPost)
	api.HandleFunc("/teams/{team:[0-9]+}", getTeam).Methods(http.MethodGet)
	api.HandleFunc("/teams/{team:[0-9]+}", deleteTeam).Methods(http.MethodDelete)
	api.HandleFunc("/teams/{team:[0-9]+}/role", getRole).Methods(http.MethodGet)
	api.HandleFunc("/teams/{team:[0-9]+}/members", listMembers).Methods(http.MethodGet)
	api.HandleFunc("/teams/{team:[0-9]+}/members", addMember).Methods(http.MethodPost)
	api.HandleFunc("/teams/{team:[0-9]+}/members/{member:[0-9]+}", updateMember).Methods(http.MethodPatch)
	api.HandleFunc("/teams/{team:[0-9]+}/members/{member:[0-9]+}", removeMember).Methods(http.MethodDelete)

	api.HandleFunc("/projects", listProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", createProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{project:[0-9]+}", updateProject).Methods(http.MethodPatch)
	api.HandleFunc("/projects/{project:[0-9]+}", deleteProject).Methods(http.MethodDelete)

	api.HandleFunc("/tasks", listTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", createTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{task:[0-9]+}", updateTask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{task:[0-9]+}", deleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{task:[0-9]+}/toggle", toggleTask).Methods(http.MethodPost)
}
