// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/coursecatalog/internal/app/system/dberrors"
	"github.com/dalemusser/coursecatalog/internal/app/system/txn"
	"github.com/dalemusser/coursecatalog/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is fixed; it is never derived from the model type.
const CollectionName = "courses"

// ErrNotFound is returned when no course has the requested id.
var ErrNotFound = dberrors.ErrNotFound

// DuplicateKeyError is returned when a write collides with a unique index.
type DuplicateKeyError = dberrors.DuplicateKeyError

// SortByCode orders courses by courseCode ascending.
var SortByCode = bson.D{{Key: "courseCode", Value: 1}}

// Store reads and writes the courses collection.
type Store struct {
	c *mongo.Collection
}

// New returns a Store bound to the courses collection of db.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// now is truncated to BSON date precision so returned records compare
// equal to what a later read returns.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Insert stores a new course, assigning its id and timestamps.
func (s *Store) Insert(ctx context.Context, c models.Course) (models.Course, error) {
	ts := now()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = ts
	c.UpdatedAt = ts
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Course{}, writeErr(err)
	}
	return c, nil
}

// InsertMany stores courses in order, stopping at the first failure.
// It returns the courses stored before the failure.
func (s *Store) InsertMany(ctx context.Context, cs []models.Course) ([]models.Course, error) {
	if len(cs) == 0 {
		return nil, nil
	}
	ts := now()
	docs := make([]any, len(cs))
	out := make([]models.Course, len(cs))
	for i, c := range cs {
		c.ID = primitive.NewObjectID()
		c.CreatedAt = ts
		c.UpdatedAt = ts
		out[i] = c
		docs[i] = c
	}
	res, err := s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		n := 0
		if res != nil {
			n = len(res.InsertedIDs)
		}
		return out[:n], writeErr(err)
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var c models.Course
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Course{}, ErrNotFound
	}
	if err != nil {
		return models.Course{}, err
	}
	return c, nil
}

// UpdateByID replaces the mutable fields of an existing course and returns
// the post-update document. It never creates a course.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, c models.Course) (models.Course, error) {
	set := bson.M{
		"courseName":  c.CourseName,
		"courseCode":  c.CourseCode,
		"credits":     c.Credits,
		"description": c.Description,
		"instructor":  c.Instructor,
		"semester":    c.Semester,
		"isActive":    c.IsActive,
		"updatedAt":   now(),
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(false)

	var out models.Course
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Course{}, ErrNotFound
	}
	if err != nil {
		return models.Course{}, writeErr(err)
	}
	return out, nil
}

// DeleteByID removes a course and returns what was removed.
func (s *Store) DeleteByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var out models.Course
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Course{}, ErrNotFound
	}
	if err != nil {
		return models.Course{}, err
	}
	return out, nil
}

// Find returns courses matching filter in the given order.
func (s *Store) Find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Course, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Course{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every course, or only active ones, sorted by code.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Course, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	return s.Find(ctx, filter, SortByCode)
}

// FindByCreditRange returns active courses whose credits fall in [min, max],
// sorted by code.
func (s *Store) FindByCreditRange(ctx context.Context, min, max float64) ([]models.Course, error) {
	filter := bson.M{
		"credits":  bson.M{"$gte": min, "$lte": max},
		"isActive": true,
	}
	return s.Find(ctx, filter, SortByCode)
}

// Count returns the number of stored courses.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// DeleteAll removes every course and reports how many were removed.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ReplaceAll swaps the whole catalog for cs. Where the deployment supports
// transactions the swap is atomic: a failed insert leaves the previous
// catalog in place.
func (s *Store) ReplaceAll(ctx context.Context, cs []models.Course) ([]models.Course, error) {
	var out []models.Course
	err := txn.Run(ctx, s.c.Database().Client(), func(ctx context.Context) error {
		if _, err := s.DeleteAll(ctx); err != nil {
			return err
		}
		var err error
		out, err = s.InsertMany(ctx, cs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// writeErr converts a duplicate-key failure into *DuplicateKeyError.
// courseCode is the only unique key besides _id, so it is assumed when
// the server does not name the field.
func writeErr(err error) error {
	if !dberrors.IsDuplicate(err) {
		return err
	}
	field := dberrors.DuplicateField(err)
	if field == "" {
		field = "courseCode"
	}
	return &DuplicateKeyError{Field: field, Err: err}
}
