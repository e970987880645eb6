// internal/app/system/schema/schema.go
package schema

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/coursecatalog/internal/app/system/indexes"
	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
	"github.com/dalemusser/coursecatalog/internal/app/system/timeouts"
	"github.com/dalemusser/coursecatalog/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Ensure applies collection validators and indexes. It is idempotent.
// Every failure is logged and all of them are returned joined.
func Ensure(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Batch(), logger, "ensure_schema")
	defer cancel()

	start := time.Now()
	var errs []error
	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("collection validators setup failed", zap.Error(err))
		errs = append(errs, err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		logger.Info("schema ensured", zap.String("database", db.Name()), zap.Duration("took", time.Since(start)))
	}
	return errors.Join(errs...)
}

// OnConnect returns a mongoconn.Options.OnConnect hook that runs Ensure on
// each new connection. Failures are logged; the connection stays usable.
func OnConnect(logger *zap.Logger) func(ctx context.Context, c *mongoconn.Conn) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, c *mongoconn.Conn) {
		db := c.Database()
		if db == nil {
			logger.Warn("schema setup skipped: connection has no database", zap.String("conn_id", c.ID))
			return
		}
		_ = Ensure(ctx, db, logger)
	}
}
