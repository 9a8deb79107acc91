package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/config"
	"github.com/flowpro/flowpro/pkg/cron"
	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/jobs"
	"github.com/flowpro/flowpro/pkg/stats"
	"github.com/flowpro/flowpro/pkg/web"
	"golang.org/x/sync/errgroup"
)

// Server is the FlowPro server.
type Server struct {
	HTTPServer  *web.HTTPServer
	StatsServer *stats.StatsServer
	Cron        *cron.Scheduler
	Config      *config.Config
	Backend     *backend.Backend
	DB          *db.DB

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server configured to serve FlowPro.
// It expects a context with *backend.Backend, *db.DB, *log.Logger, and
// *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	srv := &Server{
		Config:  cfg,
		Backend: backend.FromContext(ctx),
		DB:      db.FromContext(ctx),
		logger:  log.FromContext(ctx).WithPrefix("server"),
		ctx:     ctx,
	}

	srv.HTTPServer, err = web.NewHTTPServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	srv.StatsServer, err = stats.NewStatsServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create stats server: %w", err)
	}

	srv.Cron = cron.NewScheduler(ctx)
	for _, name := range jobs.Names() {
		runner, _ := jobs.Get(name)
		spec := runner.Spec(cfg)
		if spec == "" {
			continue
		}
		if _, err := srv.Cron.Add(name, spec, runner.Run); err != nil {
			srv.logger.Warn("error adding job", "job", name, "spec", spec, "err", err)
		}
	}

	return srv, nil
}

// Start starts the job scheduler along with the HTTP and stats servers
// and blocks until the servers stop.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)

	s.Cron.Start()

	errg.Go(func() error {
		s.logger.Print("Starting HTTP server", "addr", s.Config.HTTP.ListenAddr)
		if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if s.Config.Stats.ListenAddr != "" {
		errg.Go(func() error {
			s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
			if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	return errg.Wait()
}

// Shutdown lets the server gracefully shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.HTTPServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		return s.StatsServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		return s.Cron.Shutdown(ctx)
	})
	return errg.Wait()
}

// Close closes the server.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.HTTPServer.Close)
	errg.Go(s.StatsServer.Close)
	return errg.Wait()
}
