// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	coursesfeature "github.com/dalemusser/coursecatalog/internal/app/features/courses"
	healthfeature "github.com/dalemusser/coursecatalog/internal/app/features/health"
	"github.com/dalemusser/coursecatalog/internal/app/services/catalog"
	"github.com/dalemusser/coursecatalog/internal/app/system/readiness"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the connection manager, schema
// setup and Startup hooks have completed. The database may still be
// unreachable here; catalog routes wait on it through the readiness gate,
// while /health and /metrics never do.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Conns, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))

	// Course catalog
	svc := catalog.New(catalog.MongoSource{Conns: deps.Conns}, logger)
	gate := readiness.New(deps.Conns, coursesfeature.WriteError, logger)
	coursesHandler := coursesfeature.NewHandler(svc, logger)
	r.Mount("/courses", coursesfeature.Routes(coursesHandler, gate))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/courses", http.StatusFound)
	})

	return r, nil
}
