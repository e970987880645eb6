// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the course catalog.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, mongo_database, etc.
//   - Environment variables: COURSECATALOG_MONGO_URI, COURSECATALOG_MODE, etc.
//   - Command-line flags: --mongo_uri, --mode, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (required)"},
	{Name: "mongo_database", Default: "course_catalog", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 10, Desc: "MongoDB max connection pool size (default: 10)"},
	{Name: "mongo_min_pool_size", Default: 0, Desc: "MongoDB min connection pool size (default: 0)"},
	{Name: "mongo_max_conn_idle_time", Default: "60s", Desc: "Close pooled connections idle longer than this"},
	{Name: "mongo_server_selection_timeout", Default: "30s", Desc: "How long a connection attempt waits for a usable server"},
	{Name: "mongo_socket_timeout", Default: "45s", Desc: "Per-operation socket timeout"},
	{Name: "mongo_retry_delay", Default: "10s", Desc: "Delay between background reconnect attempts (server mode)"},

	{Name: "session_secret", Default: "", Desc: "Cookie signing secret (required in prod)"},
	{Name: "mode", Default: ModeServer, Desc: "Run mode: 'server' (warm + auto-retry) or 'oneshot' (lazy, no retry)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, COURSECATALOG_* for app) and
// flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COURSECATALOG", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         strings.TrimSpace(appValues.String("mongo_uri")),
		MongoDatabase:    strings.TrimSpace(appValues.String("mongo_database")),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		MongoMaxConnIdleTime:        appValues.Duration("mongo_max_conn_idle_time", 60*time.Second),
		MongoServerSelectionTimeout: appValues.Duration("mongo_server_selection_timeout", 30*time.Second),
		MongoSocketTimeout:          appValues.Duration("mongo_socket_timeout", 45*time.Second),
		MongoRetryDelay:             appValues.Duration("mongo_retry_delay", 10*time.Second),

		SessionSecret: appValues.String("session_secret"),
		Mode:          strings.ToLower(strings.TrimSpace(appValues.String("mode"))),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig enforces the settings the service cannot run without.
// A missing connection string is a hard error; there is no fallback
// deployment to connect to.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI == "" {
		logger.Error("missing MongoDB URI", zap.String("env", "COURSECATALOG_MONGO_URI"))
		return errors.New("mongo_uri is required (set COURSECATALOG_MONGO_URI)")
	}
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must not be empty")
	}
	if appCfg.MongoMaxPoolSize > 0 && appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	switch appCfg.Mode {
	case ModeServer, ModeOneShot:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeServer, ModeOneShot, appCfg.Mode)
	}

	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.SessionSecret == "" {
		return errors.New("session_secret is required in prod")
	}

	return nil
}
