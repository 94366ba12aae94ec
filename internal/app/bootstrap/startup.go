// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"orgvault/internal/app/migrate"
	migrationstore "orgvault/internal/app/store/migrations"
	organizationstore "orgvault/internal/app/store/organizations"
	partitionstore "orgvault/internal/app/store/partitions"
	"orgvault/internal/app/system/metrics"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// It registers the Prometheus collectors and re-drives any rename migration
// that was interrupted by a crash, so no request ever observes a registry
// record pointing at a half-moved partition.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	metrics.Init()

	engine := migrate.New(
		organizationstore.New(deps.MongoDatabase),
		partitionstore.New(deps.MongoDatabase),
		migrationstore.New(deps.MongoDatabase),
		logger,
	)
	if err := engine.Resume(ctx); err != nil {
		return fmt.Errorf("resume migrations: %w", err)
	}
	return nil
}
