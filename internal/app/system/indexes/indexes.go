// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/coursecatalog/internal/app/system/dberrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Index names used by the app. UniqueCourseCode backs the duplicate-code
// rule.
const (
	UniqueCourseCode  = "uniq_courses_code"
	idxActiveCode     = "idx_courses_active_code"
	idxActiveCredits  = "idx_courses_active_credits"
	idxCourseName     = "idx_courses_name"
	coursesCollection = "courses"
)

/*
EnsureAll is run once a connection is available. It is idempotent and
aggregates errors so every problem is visible at once.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureCourses(ctx, db); err != nil {
		problems = append(problems, coursesCollection+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCourses(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(coursesCollection)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Course codes are unique after normalization.
		{
			Keys:    bson.D{{Key: "courseCode", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(UniqueCourseCode),
		},
		// Active listing sorted by code
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "courseCode", Value: 1}},
			Options: options.Index().SetName(idxActiveCode),
		},
		// Credit range lookups over active courses
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "credits", Value: 1}},
			Options: options.Index().SetName(idxActiveCredits),
		},
		{
			Keys:    bson.D{{Key: "courseName", Value: 1}},
			Options: options.Index().SetName(idxCourseName),
		},
	})
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

// IndexOptionsConflict: same keys already indexed under another name or
// with other options.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{} // key signature -> index
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		if err := ensureIndex(ctx, coll, existing, m); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureIndex(ctx context.Context, coll *mongo.Collection, existing map[string]existingIndex, m mongo.IndexModel) error {
	var name string
	var unique *bool
	if m.Options != nil {
		if m.Options.Name != nil {
			name = *m.Options.Name
		}
		unique = m.Options.Unique
	}
	sig := keySig(m.Keys.(bson.D))
	start := time.Now()
	log := zap.L().With(
		zap.String("collection", coll.Name()),
		zap.String("name", name),
		zap.String("keys", sig),
		zap.Bool("unique", boolVal(unique)))

	if ex, ok := existing[sig]; ok {
		switch {
		case boolVal(unique) == boolVal(ex.Unique) && (name == "" || ex.Name == name):
			log.Debug("reusing existing index", zap.Duration("took", time.Since(start)))
			return nil
		case boolVal(unique) == boolVal(ex.Unique):
			log.Info("renaming index to align with desired name", zap.String("from", ex.Name))
		default:
			log.Info("index options changed; recreating", zap.String("from", ex.Name))
		}
		return recreate(ctx, coll, ex.Name, m, name, unique, log, start)
	}

	created, err := coll.Indexes().CreateOne(ctx, m)
	if err == nil {
		log.Info("index ensured", zap.String("created_name", created), zap.Duration("took", time.Since(start)))
		return nil
	}

	if isOptionsConflictErr(err) {
		// Someone created a matching index between our list and create.
		fresh, lerr := listIndexes(ctx, coll)
		if lerr == nil {
			if ex, ok := fresh[sig]; ok {
				if boolVal(unique) == boolVal(ex.Unique) {
					log.Info("reusing existing index (post-conflict)", zap.String("existing", ex.Name))
					return nil
				}
				return recreate(ctx, coll, ex.Name, m, name, unique, log, start)
			}
		}
	}

	log.Warn("index ensure failed", zap.Duration("took", time.Since(start)), zap.Error(err))
	return createErr(coll, name, unique, err)
}

func recreate(ctx context.Context, coll *mongo.Collection, drop string, m mongo.IndexModel, name string, unique *bool, log *zap.Logger, start time.Time) error {
	if _, err := coll.Indexes().DropOne(ctx, drop); err != nil {
		log.Warn("drop existing index failed", zap.String("drop", drop), zap.Error(err))
		return fmt.Errorf("%s(%s): drop failed: %v", coll.Name(), name, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		log.Warn("recreate index failed", zap.Error(err))
		return createErr(coll, name, unique, err)
	}
	log.Info("index dropped and recreated", zap.Duration("took", time.Since(start)))
	return nil
}

func createErr(coll *mongo.Collection, name string, unique *bool, err error) error {
	if boolVal(unique) && dberrors.IsDuplicate(err) {
		return fmt.Errorf("%s(%s): cannot create unique index (duplicates present). Example finder: "+
			`db.%s.aggregate([{ $group: { _id: "$courseCode", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`,
			coll.Name(), name, coll.Name())
	}
	return fmt.Errorf("%s(%s): %v", coll.Name(), name, err)
}
