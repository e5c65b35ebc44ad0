package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sanonone/zofe/pkg/propagate"
)

// Define global variables for metrics.
// We use 'promauto' which automatically registers metrics without complex initialization.

var (
	// 1. Propagation Steps (Counter)
	// Counts internal integrator steps, labeled by run.
	PropagationStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zofe_propagation_steps_total",
			Help: "Total number of internal integration steps taken",
		},
		[]string{"run_id"},
	)

	// 2. Derivative Evaluations (Counter)
	// Counts calls to the ZOFE right-hand side. The dominant cost of a run,
	// so this is the number to watch for throughput.
	RHSEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zofe_rhs_evaluations_total",
			Help: "Total number of derivative-function evaluations",
		},
		[]string{"run_id"},
	)

	// 3. Simulation Progress (Gauge)
	// Fraction of the requested time span already propagated, per run.
	// Lets an operator see how far a multi-hour simulation has come.
	SimulationProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "zofe_simulation_progress",
			Help: "Completed fraction of the requested propagation time span",
		},
		[]string{"run_id"},
	)
)

// PropagationObserver bridges a propagation run into the collectors above.
// Pass it as the Observer in propagate.Config.
func PropagationObserver() propagate.Observer {
	var lastSteps, lastEvals uint64
	return func(p propagate.Progress) {
		PropagationStepsTotal.WithLabelValues(p.RunID).Add(float64(p.Steps - lastSteps))
		RHSEvaluationsTotal.WithLabelValues(p.RunID).Add(float64(p.Evaluations - lastEvals))
		SimulationProgress.WithLabelValues(p.RunID).Set(p.Fraction)
		lastSteps, lastEvals = p.Steps, p.Evaluations
	}
}
