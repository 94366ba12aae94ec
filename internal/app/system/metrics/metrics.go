// Package metrics exposes Prometheus counters for the tenant lifecycle and
// the login path, plus the /metrics handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrgsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orgvault_organizations_created_total",
			Help: "Total number of organizations created",
		},
	)

	OrgsRenamed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orgvault_organizations_renamed_total",
			Help: "Total number of organization rename migrations committed",
		},
	)

	OrgsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orgvault_organizations_deleted_total",
			Help: "Total number of organizations deleted",
		},
	)

	MigratedDocuments = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orgvault_migrated_documents_total",
			Help: "Total number of documents copied between partitions during renames",
		},
	)

	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgvault_logins_total",
			Help: "Total number of admin login attempts by outcome",
		},
		[]string{"outcome"}, // "ok" or "denied"
	)
)

// Init registers all collectors with the default Prometheus registry.
// Call once at startup.
func Init() {
	prometheus.MustRegister(OrgsCreated)
	prometheus.MustRegister(OrgsRenamed)
	prometheus.MustRegister(OrgsDeleted)
	prometheus.MustRegister(MigratedDocuments)
	prometheus.MustRegister(Logins)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
