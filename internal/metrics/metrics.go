package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "businesshours_fetch_total",
		Help: "Schedule fetch attempts by location and result",
	}, []string{"location", "result"})
	evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "businesshours_evaluations_total",
		Help: "Status evaluations by resulting status class",
	}, []string{"status"})
	open = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "businesshours_open",
		Help: "1 while the location is open at the last transition check",
	}, []string{"location"})
)

func FetchSucceeded(location string) {
	fetches.WithLabelValues(location, "ok").Inc()
}

func FetchFailed(location string) {
	fetches.WithLabelValues(location, "error").Inc()
}

func Evaluated(status string) {
	evaluations.WithLabelValues(status).Inc()
}

// SetOpen records whether a location is currently open.
func SetOpen(location string, isOpen bool) {
	v := 0.0
	if isOpen {
		v = 1
	}
	open.WithLabelValues(location).Set(v)
}
