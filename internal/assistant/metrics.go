package assistant

import "github.com/prometheus/client_golang/prometheus"

// Metric label values for recreation triggers.
const (
	triggerStatus  = "status"
	triggerTimeout = "timeout"
)

var (
	runRecreationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viva_run_recreations_total",
			Help: "Total number of run recreations, by recovery trigger.",
		},
		[]string{"trigger"},
	)

	runPollOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viva_run_poll_outcomes_total",
			Help: "Total number of finished run poll sessions, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(runRecreationsTotal)
	prometheus.MustRegister(runPollOutcomesTotal)
}
