package jobs

import (
	"context"
	"errors"

	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StatsJob is the name of the job refreshing the entity gauges.
const StatsJob = "stats"

var entitiesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "flowpro",
	Name:      "entities",
	Help:      "The number of stored entities by kind",
}, []string{"kind"})

func init() {
	Register(StatsJob, statsRunner{})
}

type statsRunner struct{}

// Spec implements Runner.
func (statsRunner) Spec(cfg *config.Config) string {
	return cfg.Jobs.Stats
}

// Run implements Runner. It expects a *backend.Backend in ctx.
func (statsRunner) Run(ctx context.Context) error {
	be := backend.FromContext(ctx)
	if be == nil {
		return errors.New("missing backend")
	}

	t, err := be.Totals(ctx)
	if err != nil {
		return err
	}

	entitiesGauge.WithLabelValues("users").Set(float64(t.Users))
	entitiesGauge.WithLabelValues("teams").Set(float64(t.Teams))
	entitiesGauge.WithLabelValues("projects").Set(float64(t.Projects))
	entitiesGauge.WithLabelValues("open_tasks").Set(float64(t.OpenTasks))
	return nil
}
