// internal/app/system/mongoconn/dial.go
package mongoconn

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DialConfig holds the driver settings. Values are passed to the driver
// unchanged; zero means "driver default".
type DialConfig struct {
	URI      string
	Database string

	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
}

// ClientOptions translates cfg into driver options.
func (cfg DialConfig) ClientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(cfg.MaxConnIdleTime)
	}
	if cfg.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	}
	if cfg.SocketTimeout > 0 {
		opts.SetSocketTimeout(cfg.SocketTimeout)
	}
	return opts
}

// MongoDialer returns a DialFunc that connects with the official driver and
// pings the primary before reporting success.
func MongoDialer(cfg DialConfig) DialFunc {
	return func(ctx context.Context) (*Conn, error) {
		if cfg.URI == "" {
			return nil, errors.New("mongo uri is empty")
		}
		if cfg.Database == "" {
			return nil, errors.New("mongo database name is empty")
		}

		client, err := mongo.Connect(ctx, cfg.ClientOptions())
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}

		return &Conn{
			ID:            uuid.NewString(),
			Client:        client,
			DB:            client.Database(cfg.Database),
			EstablishedAt: time.Now().UTC(),
		}, nil
	}
}
