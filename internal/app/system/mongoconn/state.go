// internal/app/system/mongoconn/state.go
package mongoconn

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// State is the manager's view of the database connection.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
	Failed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Conn is an established, verified connection. The same *Conn is handed to
// every caller until the manager is closed.
type Conn struct {
	ID            string
	Client        *mongo.Client
	DB            *mongo.Database
	EstablishedAt time.Time
}

// Database returns the configured database on this connection.
func (c *Conn) Database() *mongo.Database { return c.DB }

// DialFunc establishes and verifies one connection.
type DialFunc func(ctx context.Context) (*Conn, error)

// ErrClosed is the cause reported after Close.
var ErrClosed = errors.New("connection manager closed")

// ConnectionError is the only error Acquire returns.
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	if e.Cause == nil {
		return "database unavailable"
	}
	return "database unavailable: " + e.Cause.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

type connKey struct{}

// WithConn returns a copy of ctx carrying c.
func WithConn(ctx context.Context, c *Conn) context.Context {
	return context.WithValue(ctx, connKey{}, c)
}

// FromContext returns the connection stored by WithConn, if any.
func FromContext(ctx context.Context) (*Conn, bool) {
	c, ok := ctx.Value(connKey{}).(*Conn)
	return c, ok && c != nil
}
