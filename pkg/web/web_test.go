package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/config"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/migrate"
	"github.com/flowpro/flowpro/pkg/store"
	"github.com/flowpro/flowpro/pkg/store/database"
	"github.com/flowpro/flowpro/pkg/test"
	"github.com/flowpro/flowpro/pkg/web"
	"github.com/matryer/is"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiUser struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type apiToken struct {
	Token string  `json:"token"`
	User  apiUser `json:"user"`
}

func setup(t *testing.T) http.Handler {
	t.Helper()
	is := is.New(t)

	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Auth.KeyPath = filepath.Join(cfg.DataPath, "keys", "flowpro_ed25519")
	ctx := config.WithContext(context.TODO(), cfg)

	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(migrate.Migrate(ctx, dbx))

	st := database.New(ctx, dbx)
	ctx = db.WithContext(ctx, dbx)
	ctx = store.WithContext(ctx, st)
	ctx = backend.WithContext(ctx, backend.New(ctx, cfg, dbx, st))

	return web.NewRouter(ctx)
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return v
}

func signup(t *testing.T, h http.Handler, email, name string) apiToken {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":        email,
		"password":     "secret123",
		"display_name": name,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup %s => %d %s", email, rec.Code, rec.Body.String())
	}
	return decode[apiToken](t, rec)
}

func TestHealth(t *testing.T) {
	is := is.New(t)
	h := setup(t)

	is.Equal(do(t, h, http.MethodGet, "/livez", "", nil).Code, http.StatusOK)
	is.Equal(do(t, h, http.MethodGet, "/readyz", "", nil).Code, http.StatusOK)
}

func TestNotFound(t *testing.T) {
	is := is.New(t)
	h := setup(t)

	rec := do(t, h, http.MethodGet, "/nope", "", nil)
	is.Equal(rec.Code, http.StatusNotFound)
	is.Equal(decode[apiError](t, rec).Code, "not_found")
	is.True(rec.Header().Get("X-Request-ID") != "")
}

func TestRequestIDEcho(t *testing.T) {
	is := is.New(t)
	h := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	is.Equal(rec.Header().Get("X-Request-ID"), "abc-123")
}

func TestJWKS(t *testing.T) {
	is := is.New(t)
	h := setup(t)

	rec := do(t, h, http.MethodGet, "/.well-known/jwks.json", "", nil)
	is.Equal(rec.Code, http.StatusOK)

	var set struct {
		Keys []struct {
			Kty string `json:"kty"`
			Alg string `json:"alg"`
			Kid string `json:"kid"`
		} `json:"keys"`
	}
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &set))
	is.Equal(len(set.Keys), 1)
	is.Equal(set.Keys[0].Kty, "OKP")
	is.Equal(set.Keys[0].Alg, "EdDSA")
	is.True(set.Keys[0].Kid != "")
}

func TestSignupAndToken(t *testing.T) {
	is := is.New(t)
	h := setup(t)

	tok := signup(t, h, "Alice@Example.com", "Alice")
	is.True(tok.Token != "")
	is.Equal(tok.User.Email, "alice@example.com")

	rec := do(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	is.Equal(rec.Code, http.StatusConflict)
	is.Equal(decode[apiError](t, rec).Code, "conflict")

	rec = do(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret123",
	})
	is.Equal(rec.Code, http.StatusUnprocessableEntity)
	is.Equal(decode[apiError](t, rec).Code, "validation_failed")

	rec = do(t, h, http.MethodPost, "/api/auth/token", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	is.Equal(rec.Code, http.StatusOK)
	login := decode[apiToken](t, rec)
	is.Equal(login.User.ID, tok.User.ID)

	rec = do(t, h, http.MethodPost, "/api/auth/token", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	is.Equal(rec.Code, http.StatusUnauthorized)

	rec = do(t, h, http.MethodGet, "/api/me", login.Token, nil)
	is.Equal(rec.Code, http.StatusOK)
	me := decode[apiUser](t, rec)
	is.Equal(me.Email, "alice@example.com")
	is.Equal(me.DisplayName, "Alice")
}

func TestUnauthenticated(t *testing.T) {
	is := is.New(t)
	h := setup(t)

	for _, token := range []string{"", "not-a-token"} {
		rec := do(t, h, http.MethodGet, "/api/teams", token, nil)
		is.Equal(rec.Code, http.StatusUnauthorized)
		is.Equal(decode[apiError](t, rec).Code, "unauthenticated")
	}
}

func TestUpdateMe(t *testing.T) {
	is := is.New(t)
	h := setup(t)
	tok := signup(t, h, "alice@example.com", "Alice")

	rec := do(t, h, http.MethodPatch, "/api/me", tok.Token, map[string]string{
		"display_name": "Alice Liddell",
		"password":     "another-secret",
	})
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(decode[apiUser](t, rec).DisplayName, "Alice Liddell")

	rec = do(t, h, http.MethodPost, "/api/auth/token", "", map[string]string{
		"email":    "alice@example.com",
		"password": "another-secret",
	})
	is.Equal(rec.Code, http.StatusOK)
}

func TestPasswordTooLong(t *testing.T) {
	is := is.New(t)
	h := setup(t)
	long := strings.Repeat("a", 64)

	rec := do(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "bob@example.com",
		"password": long,
	})
	is.Equal(rec.Code, http.StatusUnprocessableEntity)
	is.Equal(decode[apiError](t, rec).Code, "validation_failed")

	tok := signup(t, h, "alice@example.com", "Alice")
	rec = do(t, h, http.MethodPatch, "/api/me", tok.Token, map[string]string{
		"display_name": "Mallory",
		"password":     long,
	})
	is.Equal(rec.Code, http.StatusUnprocessableEntity)

	// Nothing is written when one of the fields is rejected.
	rec = do(t, h, http.MethodGet, "/api/me", tok.Token, nil)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(decode[apiUser](t, rec).DisplayName, "Alice")
}

func TestSearchUsers(t *testing.T) {
	is := is.New(t)
	h := setup(t)
	alice := signup(t, h, "alice@example.com", "Alice")
	bob := signup(t, h, "bob@example.com", "Bob")

	rec := do(t, h, http.MethodGet, "/api/users/search?email=BOB", alice.Token, nil)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(decode[apiUser](t, rec).ID, bob.User.ID)

	rec = do(t, h, http.MethodGet, "/api/users/search?email=carol", alice.Token, nil)
	is.Equal(rec.Code, http.StatusNotFound)

	rec = do(t, h, http.MethodGet, "/api/users/search", alice.Token, nil)
	is.Equal(rec.Code, http.StatusUnprocessableEntity)
}

func path(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
