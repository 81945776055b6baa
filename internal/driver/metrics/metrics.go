package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the driver workflow.
type Metrics struct {
	Registrations       prometheus.Counter
	RegistrationsFailed prometheus.Counter
	Approvals           prometheus.Counter
	Rejections          prometheus.Counter
	BalanceAdjustments  prometheus.Counter
	Deletions           prometheus.Counter
}

// New creates and registers all driver workflow metrics.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drivergate_registrations_total",
			Help: "Total driver registrations accepted",
		}),
		RegistrationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drivergate_registrations_failed_total",
			Help: "Total driver registrations rejected by validation",
		}),
		Approvals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drivergate_approvals_total",
			Help: "Total driver approvals",
		}),
		Rejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drivergate_rejections_total",
			Help: "Total driver rejections",
		}),
		BalanceAdjustments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drivergate_balance_adjustments_total",
			Help: "Total bonus balance adjustments",
		}),
		Deletions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drivergate_deletions_total",
			Help: "Total driver record deletions",
		}),
	}
}
