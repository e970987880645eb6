// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/coursecatalog/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the connection
// manager is built, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	n := timeouts.ConfigureFromEnv()
	logger.Info("timeouts configured", append(timeouts.Fields(), zap.Int("overrides", n))...)
	return nil
}
