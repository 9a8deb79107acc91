package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/config"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/migrate"
	"github.com/flowpro/flowpro/pkg/proto"
	"github.com/flowpro/flowpro/pkg/store"
	"github.com/flowpro/flowpro/pkg/store/database"
	"github.com/flowpro/flowpro/pkg/test"
	"github.com/matryer/is"
)

func setup(t *testing.T) (context.Context, *backend.Backend) {
	t.Helper()
	ctx, be, _ := setupStore(t, nil)
	return ctx, be
}

// setupStore is like setup but lets wrap replace the store handed to the
// backend. It also returns the database.
func setupStore(t *testing.T, wrap func(store.Store) store.Store) (context.Context, *backend.Backend, *db.DB) {
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
	if wrap != nil {
		st = wrap(st)
	}
	return ctx, backend.New(ctx, cfg, dbx, st), dbx
}

func createUser(t *testing.T, ctx context.Context, be *backend.Backend, email, name string) proto.User {
	t.Helper()
	u, err := be.CreateUser(ctx, email, proto.UserOptions{DisplayName: name})
	if err != nil {
		t.Fatalf("CreateUser(%q) => %v", email, err)
	}
	return u
}
