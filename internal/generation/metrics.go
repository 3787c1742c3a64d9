package generation

import "github.com/prometheus/client_golang/prometheus"

var (
	generationsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reelforge_generations_started_total",
			Help: "Total number of generation executions started.",
		},
	)

	generationsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelforge_generations_in_flight",
			Help: "Number of generation executions currently running.",
		},
	)

	generationsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelforge_generations_finished_total",
			Help: "Total number of generation executions finished, by terminal status.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(generationsStarted)
	prometheus.MustRegister(generationsInFlight)
	prometheus.MustRegister(generationsFinished)
}
