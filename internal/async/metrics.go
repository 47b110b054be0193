package async

import "github.com/prometheus/client_golang/prometheus"

// Metric label values for attempt outcomes.
const (
	outcomeSuccess = "success"
	outcomeTimeout = "timeout"
	outcomeError   = "error"
)

var (
	requestAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viva_request_attempts_total",
			Help: "Total number of remote call attempts, by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	requestExhaustedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viva_request_exhausted_total",
			Help: "Total number of remote calls that used every retry attempt and failed.",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(requestAttemptsTotal)
	prometheus.MustRegister(requestExhaustedTotal)
}
