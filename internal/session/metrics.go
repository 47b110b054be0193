package session

import "github.com/prometheus/client_golang/prometheus"

var (
	interviewsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viva_interviews_started_total",
			Help: "Total number of interview sessions started.",
		},
	)

	interviewsCompletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viva_interviews_completed_total",
			Help: "Total number of interviews that reached a final evaluation.",
		},
	)

	questionsAskedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viva_questions_asked_total",
			Help: "Total number of budget-consuming questions asked across interviews.",
		},
	)
)

func init() {
	prometheus.MustRegister(interviewsStartedTotal)
	prometheus.MustRegister(interviewsCompletedTotal)
	prometheus.MustRegister(questionsAskedTotal)
}
