// Package database implements store.Store on top of a SQL database.
package database

import (
	"context"
	"database/sql"

	"github.com/charmbracelet/log"
	"github.com/flowpro/flowpro/pkg/config"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/store"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*userStore
	*teamStore
	*memberStore
	*projectStore
	*taskStore
	*statsStore
}

var _ store.Store = (*datastore)(nil)

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		userStore:    &userStore{},
		teamStore:    &teamStore{},
		memberStore:  &memberStore{},
		projectStore: &projectStore{},
		taskStore:    &taskStore{},
		statsStore:   &statsStore{},
	}

	return s
}

// affected turns a statement that touched no rows into
// db.ErrRecordNotFound.
func affected(res sql.Result, err error) error {
	if err != nil {
		return err //nolint:wrapcheck
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err //nolint:wrapcheck
	}
	if n == 0 {
		return db.ErrRecordNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
