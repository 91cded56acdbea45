package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ClientsCreated  prometheus.Counter
	AccountsCreated prometheus.Counter
	Deposits        prometheus.Counter
	Transfers       prometheus.Counter
	RejectedOps     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ClientsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "girobank_clients_created_total",
			Help: "Total number of clients created",
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "girobank_accounts_created_total",
			Help: "Total number of accounts opened",
		}),
		Deposits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "girobank_deposits_total",
			Help: "Total number of successful deposits",
		}),
		Transfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "girobank_transfers_total",
			Help: "Total number of successful transfers",
		}),
		RejectedOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "girobank_operations_rejected_total",
			Help: "Operations rejected by validation or business rules",
		}, []string{"operation"}),
	}
}
