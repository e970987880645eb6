package schema_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/coursecatalog/internal/app/system/indexes"
	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
	"github.com/dalemusser/coursecatalog/internal/app/system/schema"
	"github.com/dalemusser/coursecatalog/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestEnsure_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := schema.Ensure(ctx, db, zap.NewNop()); err != nil {
			t.Fatalf("Ensure run %d failed: %v", i+1, err)
		}
	}

	_, err := db.Collection("courses").InsertOne(ctx, bson.M{"courseCode": "bad"})
	if err == nil {
		t.Error("expected the collection validator to reject an invalid course")
	}
}

func TestOnConnect_AppliesUniqueIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	schema.OnConnect(zap.NewNop())(ctx, &mongoconn.Conn{ID: "test", DB: db, EstablishedAt: time.Now()})

	doc := bson.M{
		"courseName": "Web Programming",
		"courseCode": "CPAN212",
		"credits":    3.0,
		"semester":   "Fall",
		"isActive":   true,
	}
	coll := db.Collection("courses")
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := coll.InsertOne(ctx, doc); !mongo.IsDuplicateKeyError(err) {
		t.Errorf("second insert: got %v, want duplicate key on %s", err, indexes.UniqueCourseCode)
	}
}

func TestOnConnect_NoDatabase(t *testing.T) {
	// A connection without a database is logged and skipped.
	schema.OnConnect(nil)(context.Background(), &mongoconn.Conn{ID: "test"})
}
