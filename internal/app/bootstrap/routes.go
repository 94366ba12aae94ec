// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "orgvault/internal/app/features/health"
	loginfeature "orgvault/internal/app/features/login"
	orgsfeature "orgvault/internal/app/features/orgs"
	"orgvault/internal/app/migrate"
	"orgvault/internal/app/registry"
	adminstore "orgvault/internal/app/store/admins"
	migrationstore "orgvault/internal/app/store/migrations"
	organizationstore "orgvault/internal/app/store/organizations"
	partitionstore "orgvault/internal/app/store/partitions"
	"orgvault/internal/app/system/auth"
	"orgvault/internal/app/system/metrics"
	"orgvault/internal/app/system/orglock"
	"orgvault/internal/app/system/token"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. All stores share the single connected
// database; the registry service owns the cross-store sequencing and the
// feature routers stay thin.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	orgs := organizationstore.New(deps.MongoDatabase)
	admins := adminstore.New(deps.MongoDatabase)
	parts := partitionstore.New(deps.MongoDatabase)
	journal := migrationstore.New(deps.MongoDatabase)

	tokens := token.New(appCfg.TokenSecret, appCfg.TokenTTL)
	engine := migrate.New(orgs, parts, journal, logger)
	reg := registry.New(orgs, admins, parts, engine, tokens, orglock.New(), logger)
	gate := auth.NewGate(tokens, admins, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	// Admin authentication
	loginHandler := loginfeature.NewHandler(reg, logger)
	r.Mount("/admin", loginfeature.Routes(loginHandler))

	// Organization provisioning
	orgHandler := orgsfeature.NewHandler(reg, logger)
	r.Mount("/org", orgsfeature.Routes(orgHandler, gate))

	return r, nil
}
