package testutil

import (
	"context"
	"testing"
	"time"

	coursestore "github.com/dalemusser/coursecatalog/internal/app/store/courses"
	"github.com/dalemusser/coursecatalog/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Course returns a valid, unsaved course with the given code and name.
func Course(code, name string) models.Course {
	c := models.NewCourse()
	c.CourseCode = code
	c.CourseName = name
	c.Credits = 3
	return c
}

// CreateCourse inserts a valid active course directly into the collection.
func (f *Fixtures) CreateCourse(ctx context.Context, code, name string) models.Course {
	f.t.Helper()
	return f.CreateCourseWith(ctx, Course(code, name))
}

// CreateCourseWith inserts c as given, filling in id and timestamps.
func (f *Fixtures) CreateCourseWith(ctx context.Context, c models.Course) models.Course {
	f.t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := f.db.Collection(coursestore.CollectionName).InsertOne(ctx, c); err != nil {
		f.t.Fatalf("CreateCourse(%s) failed: %v", c.CourseCode, err)
	}
	return c
}
