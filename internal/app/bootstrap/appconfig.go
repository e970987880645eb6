// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
)

// Run modes. A server keeps one connection for its lifetime and retries in
// the background; a one-shot process dials lazily on first use and never
// retries on its own.
const (
	ModeServer  = "server"
	ModeOneShot = "oneshot"
)

// AppConfig holds service-specific configuration for the course catalog.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig carries
// the framework-level settings (ports, TLS, logging).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // required; there is no default deployment
	MongoDatabase string

	MongoMaxPoolSize            uint64
	MongoMinPoolSize            uint64
	MongoMaxConnIdleTime        time.Duration
	MongoServerSelectionTimeout time.Duration
	MongoSocketTimeout          time.Duration

	// Delay between background reconnect attempts (server mode only).
	MongoRetryDelay time.Duration

	// Secret for the presentation layer's signed cookies. Required in prod.
	SessionSecret string

	Mode string // ModeServer or ModeOneShot
}

// DialConfig returns the driver settings for the connection manager.
func (c AppConfig) DialConfig() mongoconn.DialConfig {
	return mongoconn.DialConfig{
		URI:                    c.MongoURI,
		Database:               c.MongoDatabase,
		MaxPoolSize:            c.MongoMaxPoolSize,
		MinPoolSize:            c.MongoMinPoolSize,
		MaxConnIdleTime:        c.MongoMaxConnIdleTime,
		ServerSelectionTimeout: c.MongoServerSelectionTimeout,
		SocketTimeout:          c.MongoSocketTimeout,
	}
}

// LongLived reports whether the process runs in server mode.
func (c AppConfig) LongLived() bool {
	return c.Mode != ModeOneShot
}
