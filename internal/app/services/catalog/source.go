// internal/app/services/catalog/source.go
package catalog

import (
	"context"

	coursestore "github.com/dalemusser/coursecatalog/internal/app/store/courses"
	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
)

// Acquirer hands out the shared database connection.
type Acquirer interface {
	Acquire(ctx context.Context) (*mongoconn.Conn, error)
}

// MongoSource binds course stores to the managed connection. A connection
// already placed on ctx by the readiness gate is used directly.
type MongoSource struct {
	Conns Acquirer
}

func (s MongoSource) Repository(ctx context.Context) (Repository, error) {
	if c, ok := mongoconn.FromContext(ctx); ok {
		return coursestore.New(c.Database()), nil
	}
	c, err := s.Conns.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return coursestore.New(c.Database()), nil
}
