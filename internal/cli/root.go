package cli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/dalemusser/coursecatalog/internal/app/services/catalog"
	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
	"github.com/dalemusser/coursecatalog/internal/app/system/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	envMongoURI      = "COURSECATALOG_MONGO_URI"
	envMongoDatabase = "COURSECATALOG_MONGO_DATABASE"
	defaultDatabase  = "course_catalog"
)

var (
	mongoURI      string
	mongoDatabase string
	isDebug       bool
	timeout       time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "coursectl",
	Short: "Operator tools for the course catalog",
	Long: `coursectl checks connectivity to the course catalog database, seeds the
sample STEM catalog and lists stored courses. Each invocation connects once
and never retries in the background.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return resolveConfig()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI (env "+envMongoURI+")")
	rootCmd.PersistentFlags().StringVar(&mongoDatabase, "mongo-database", "", "MongoDB database name (env "+envMongoDatabase+", default "+defaultDatabase+")")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 40*time.Second, "overall time limit for the command")
}

// resolveConfig fills unset flags from the environment.
func resolveConfig() error {
	if mongoURI == "" {
		mongoURI = os.Getenv(envMongoURI)
	}
	if mongoDatabase == "" {
		mongoDatabase = os.Getenv(envMongoDatabase)
	}
	if mongoDatabase == "" {
		mongoDatabase = defaultDatabase
	}
	if mongoURI == "" {
		return errors.New("no MongoDB URI: pass --mongo-uri or set " + envMongoURI)
	}
	return nil
}

// session is the per-invocation wiring: a one-shot connection manager and
// the catalog service on top of it.
type session struct {
	log     *zap.Logger
	conns   *mongoconn.Manager
	catalog *catalog.Service
}

func newSession() (*session, error) {
	var log *zap.Logger
	var err error
	if isDebug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return newSessionWith(log, mongoconn.MongoDialer(mongoconn.DialConfig{
		URI:                    mongoURI,
		Database:               mongoDatabase,
		MaxPoolSize:            5,
		ServerSelectionTimeout: 30 * time.Second,
		SocketTimeout:          45 * time.Second,
	})), nil
}

// newSessionWith wires a one-shot manager over dial. Indexes and collection
// validators are applied when the connection is first made, so seeding a
// fresh database still enforces unique course codes.
func newSessionWith(log *zap.Logger, dial mongoconn.DialFunc) *session {
	conns := mongoconn.New(mongoconn.Options{
		Dial:      dial,
		Logger:    log,
		AutoRetry: false,
		OnConnect: schema.OnConnect(log),
	})

	return &session{
		log:     log,
		conns:   conns,
		catalog: catalog.New(catalog.MongoSource{Conns: conns}, log),
	}
}

func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.conns.Close(ctx)
	_ = s.log.Sync()
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
