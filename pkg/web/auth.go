package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/proto"
	"github.com/gorilla/mux"
)

// AuthController registers the public authentication routes.
func AuthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/auth/signup", signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/token", issueToken).Methods(http.MethodPost)
	r.HandleFunc("/.well-known/jwks.json", getJWKS).Methods(http.MethodGet)
}

type signupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=59"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

type tokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      userView  `json:"user"`
}

// withUser authenticates the request with its bearer token and puts the user
// in the request context.
func withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token, ok := bearerToken(r)
		if !ok {
			renderError(w, r, proto.ErrUnauthenticated)
			return
		}

		be := backend.FromContext(ctx)
		user, err := be.UserByToken(ctx, token)
		if err != nil {
			renderError(w, r, err)
			return
		}

		logger := log.FromContext(ctx).With("user", user.ID())
		ctx = log.WithContext(ctx, logger)
		ctx = proto.WithUserContext(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken returns the token of a "Bearer" Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	user, err := be.CreateUser(ctx, req.Email, proto.UserOptions{
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderToken(w, r, http.StatusCreated, user)
}

func issueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	be := backend.FromContext(ctx)
	user, err := be.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderToken(w, r, http.StatusOK, user)
}

func renderToken(w http.ResponseWriter, r *http.Request, status int, user proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	token, expiresAt, err := be.IssueToken(ctx, user)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, status, tokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      newUserView(user),
	})
}

func getJWKS(w http.ResponseWriter, r *http.Request) {
	be := backend.FromContext(r.Context())
	kp, err := be.KeyPair()
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, kp.KeySet())
}
