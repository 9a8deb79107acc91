// Package jobs holds the background jobs run by the server.
package jobs

import (
	"context"
	"sort"
	"sync"

	"github.com/flowpro/flowpro/pkg/config"
)

// Runner is a job runner.
type Runner interface {
	// Spec returns the job's cron spec. An empty spec disables the job.
	Spec(cfg *config.Config) string
	// Run runs the job once.
	Run(ctx context.Context) error
}

var (
	mtx  sync.Mutex
	jobs = map[string]Runner{}
)

// Register registers a job under name.
func Register(name string, runner Runner) {
	mtx.Lock()
	defer mtx.Unlock()
	jobs[name] = runner
}

// Names returns the names of the registered jobs in order.
func Names() []string {
	mtx.Lock()
	defer mtx.Unlock()
	names := make([]string, 0, len(jobs))
	for n := range jobs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the job registered under name.
func Get(name string) (Runner, bool) {
	mtx.Lock()
	defer mtx.Unlock()
	r, ok := jobs[name]
	return r, ok
}
