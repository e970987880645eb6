// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
	"github.com/dalemusser/coursecatalog/internal/app/system/schema"
	"github.com/dalemusser/waffle/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// ConnectDB builds the connection manager. It never fails because the
// database is unreachable: in server mode the first attempt starts in the
// background and failures are retried until Shutdown; in one-shot mode
// nothing is dialed until the first request needs it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mgr := newManager(appCfg, mongoconn.MongoDialer(appCfg.DialConfig()), reg, logger)

	logger.Info("mongo connection manager ready",
		zap.String("database", appCfg.MongoDatabase),
		zap.String("mode", appCfg.Mode),
		zap.Duration("retry_delay", appCfg.MongoRetryDelay))

	if appCfg.LongLived() {
		mgr.Warm()
	}
	return DBDeps{Conns: mgr, Metrics: reg}, nil
}

func newManager(appCfg AppConfig, dial mongoconn.DialFunc, reg prometheus.Registerer, logger *zap.Logger) *mongoconn.Manager {
	return mongoconn.New(mongoconn.Options{
		Dial:           dial,
		Logger:         logger,
		AutoRetry:      appCfg.LongLived(),
		RetryDelay:     appCfg.MongoRetryDelay,
		AttemptTimeout: appCfg.MongoServerSelectionTimeout + 5*time.Second,
		OnConnect:      schema.OnConnect(logger),
		Metrics:        mongoconn.NewMetrics(reg),
	})
}

// EnsureSchema is a no-op at boot: the database may not be reachable yet.
// Indexes and validators are applied by the manager's OnConnect hook each
// time a connection is established.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("schema setup deferred until the database connection is established",
		zap.String("state", deps.Conns.State().String()))
	return nil
}
