package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

var (
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tombola",
		Name:      "registrations_total",
		Help:      "Participant registrations through a QR code, by outcome.",
	}, []string{"outcome"})

	Draws = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tombola",
		Name:      "draws_total",
		Help:      "Draw attempts, by outcome.",
	}, []string{"outcome"})

	CancelledDraws = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tombola",
		Name:      "draws_cancelled_total",
		Help:      "Draws cancelled by an administrator.",
	})

	EligiblePool = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tombola",
		Name:      "eligible_participants",
		Help:      "Size of the eligible pool seen by the last draw or stats run.",
	})
)

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
