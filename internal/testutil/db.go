package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// TestMongoURIEnv names the server used by database-backed tests.
const TestMongoURIEnv = "COURSECATALOG_TEST_MONGO_URI"

const defaultTestMongoURI = "mongodb://localhost:27017"

// TestContext returns a context suitable for a single test's store calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// TestMongoURI returns the configured test server URI.
func TestMongoURI() string {
	if uri := os.Getenv(TestMongoURIEnv); uri != "" {
		return uri
	}
	return defaultTestMongoURI
}

// SetupTestDB connects to the test server and returns a fresh database
// that is dropped when the test ends. The test is skipped when no server
// is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(TestMongoURI()).
		SetServerSelectionTimeout(2 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		t.Skipf("mongo not available: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo not available: %v", err)
	}

	name := fmt.Sprintf("coursecatalog_test_%s", uuid.NewString()[:8])
	db := client.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
