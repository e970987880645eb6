// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
	"github.com/prometheus/client_golang/prometheus"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	// Conns owns the single shared MongoDB connection. It may not be
	// connected yet; handlers go through the readiness gate.
	Conns *mongoconn.Manager

	// Metrics is the registry served at /metrics.
	Metrics *prometheus.Registry
}
