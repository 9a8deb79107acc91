// Package backend implements FlowPro's team membership rules, team and member
// queries, and project and task ownership checks on top of a store.Store.
package backend

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/flowpro/flowpro/pkg/config"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/jwk"
	"github.com/flowpro/flowpro/pkg/store"
)

// Backend is the FlowPro backend that handles users, teams, members,
// projects and tasks. Every operation that acts on behalf of a user takes
// that user explicitly as the actor.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger
	cache  *cache

	keyOnce sync.Once
	keyPair jwk.Pair
	keyErr  error
}

// New returns a new FlowPro backend.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  st,
		logger: logger,
	}

	b.cache = newCache(b, cfg.Cache.Users)

	return b
}
