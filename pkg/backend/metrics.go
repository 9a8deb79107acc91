package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var authzCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flowpro",
	Subsystem: "backend",
	Name:      "authz_decisions_total",
	Help:      "The total number of authorization decisions",
}, []string{"op", "decision"})

func recordDecision(op string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	authzCounter.WithLabelValues(op, decision).Inc()
}
