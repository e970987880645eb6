// internal/app/services/catalog/catalog.go
package catalog

import (
	"context"
	"fmt"

	"github.com/dalemusser/coursecatalog/internal/app/system/apperr"
	"github.com/dalemusser/coursecatalog/internal/app/system/courseval"
	"github.com/dalemusser/coursecatalog/internal/app/system/inputval"
	"github.com/dalemusser/coursecatalog/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Repository is the storage the catalog needs. *coursestore.Store
// satisfies it.
type Repository interface {
	Insert(ctx context.Context, c models.Course) (models.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, c models.Course) (models.Course, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (models.Course, error)
	List(ctx context.Context, activeOnly bool) ([]models.Course, error)
	FindByCreditRange(ctx context.Context, min, max float64) ([]models.Course, error)
	Count(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, cs []models.Course) ([]models.Course, error)
}

// RepositorySource yields a Repository bound to a live connection.
type RepositorySource interface {
	Repository(ctx context.Context) (Repository, error)
}

// Service is the course CRUD surface. Every returned error is an
// *apperr.Error and has already been logged.
type Service struct {
	repos RepositorySource
	log   *zap.Logger
}

func New(repos RepositorySource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repos: repos, log: logger}
}

// Create validates p and stores a new course.
func (s *Service) Create(ctx context.Context, p courseval.Payload) (models.Course, error) {
	course, res := courseval.Build(p)
	if res.HasErrors() {
		return models.Course{}, s.fail("create", apperr.Validation(res))
	}
	repo, err := s.repos.Repository(ctx)
	if err != nil {
		return models.Course{}, s.fail("create", err)
	}
	created, err := repo.Insert(ctx, course)
	if err != nil {
		return models.Course{}, s.fail("create", err, zap.String("course_code", course.CourseCode))
	}
	s.log.Info("course created",
		zap.String("course_id", created.ID.Hex()),
		zap.String("course_code", created.CourseCode))
	return created, nil
}

// Get loads one course. An id that is not a valid ObjectID cannot name a
// stored course and is reported as not found.
func (s *Service) Get(ctx context.Context, id string) (models.Course, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Course{}, s.fail("get", err, zap.String("course_id", id))
	}
	repo, err := s.repos.Repository(ctx)
	if err != nil {
		return models.Course{}, s.fail("get", err)
	}
	c, err := repo.GetByID(ctx, oid)
	if err != nil {
		return models.Course{}, s.fail("get", err, zap.String("course_id", id))
	}
	return c, nil
}

// Update overlays p on the stored course, re-validates the full record and
// writes it. A missing course is NotFound; Update never creates one.
func (s *Service) Update(ctx context.Context, id string, p courseval.Payload) (models.Course, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Course{}, s.fail("update", err, zap.String("course_id", id))
	}
	repo, err := s.repos.Repository(ctx)
	if err != nil {
		return models.Course{}, s.fail("update", err)
	}
	existing, err := repo.GetByID(ctx, oid)
	if err != nil {
		return models.Course{}, s.fail("update", err, zap.String("course_id", id))
	}
	merged, res := courseval.Merge(existing, p)
	if res.HasErrors() {
		return models.Course{}, s.fail("update", apperr.Validation(res), zap.String("course_id", id))
	}
	updated, err := repo.UpdateByID(ctx, oid, merged)
	if err != nil {
		return models.Course{}, s.fail("update", err, zap.String("course_id", id))
	}
	s.log.Info("course updated",
		zap.String("course_id", id),
		zap.String("course_code", updated.CourseCode))
	return updated, nil
}

// Delete removes a course and returns it. Deleting the same id again is
// NotFound.
func (s *Service) Delete(ctx context.Context, id string) (models.Course, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Course{}, s.fail("delete", err, zap.String("course_id", id))
	}
	repo, err := s.repos.Repository(ctx)
	if err != nil {
		return models.Course{}, s.fail("delete", err)
	}
	c, err := repo.DeleteByID(ctx, oid)
	if err != nil {
		return models.Course{}, s.fail("delete", err, zap.String("course_id", id))
	}
	s.log.Info("course deleted",
		zap.String("course_id", id),
		zap.String("course_code", c.CourseCode))
	return c, nil
}

// List returns every course sorted by code.
func (s *Service) List(ctx context.Context) ([]models.Course, error) {
	return s.list(ctx, "list", false)
}

// ListAPI returns active courses sorted by code.
func (s *Service) ListAPI(ctx context.Context) ([]models.Course, error) {
	return s.list(ctx, "list_api", true)
}

func (s *Service) list(ctx context.Context, op string, activeOnly bool) ([]models.Course, error) {
	repo, err := s.repos.Repository(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	cs, err := repo.List(ctx, activeOnly)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return cs, nil
}

// ListByCredits returns active courses with credits in [min, max].
func (s *Service) ListByCredits(ctx context.Context, min, max float64) ([]models.Course, error) {
	if min > max {
		res := &inputval.Result{}
		res.Add("min", "lte", "Minimum credits must not exceed maximum credits.")
		return nil, s.fail("list_by_credits", apperr.Validation(res))
	}
	repo, err := s.repos.Repository(ctx)
	if err != nil {
		return nil, s.fail("list_by_credits", err)
	}
	cs, err := repo.FindByCreditRange(ctx, min, max)
	if err != nil {
		return nil, s.fail("list_by_credits", err)
	}
	return cs, nil
}

// Count returns the number of stored courses.
func (s *Service) Count(ctx context.Context) (int64, error) {
	repo, err := s.repos.Repository(ctx)
	if err != nil {
		return 0, s.fail("count", err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, s.fail("count", err)
	}
	return n, nil
}

// Seed validates every payload, then stores the courses in order. Nothing
// is written if any payload is invalid. With replace the existing catalog
// is swapped out as one unit; otherwise courses are appended and those
// stored before a failure are returned with the error.
func (s *Service) Seed(ctx context.Context, ps []courseval.Payload, replace bool) ([]models.Course, error) {
	courses := make([]models.Course, 0, len(ps))
	invalid := &inputval.Result{}
	for i, p := range ps {
		c, res := courseval.Build(p)
		for _, fe := range res.Errors {
			invalid.Add(fmt.Sprintf("[%d].%s", i, fe.Field), fe.Rule, fe.Message)
		}
		courses = append(courses, c)
	}
	if invalid.HasErrors() {
		return nil, s.fail("seed", apperr.Validation(invalid))
	}

	repo, err := s.repos.Repository(ctx)
	if err != nil {
		return nil, s.fail("seed", err)
	}

	if replace {
		out, err := repo.ReplaceAll(ctx, courses)
		if err != nil {
			return nil, s.fail("seed", err)
		}
		s.log.Info("catalog seeded", zap.Int("inserted", len(out)), zap.Bool("replace", true))
		return out, nil
	}

	out := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		created, err := repo.Insert(ctx, c)
		if err != nil {
			return out, s.fail("seed", err, zap.String("course_code", c.CourseCode))
		}
		out = append(out, created)
	}
	s.log.Info("catalog seeded", zap.Int("inserted", len(out)), zap.Bool("replace", false))
	return out, nil
}

// fail classifies err and logs it with full detail. Expected outcomes
// (bad input, conflicts, missing ids) log at info; the rest at error.
func (s *Service) fail(op string, err error, fields ...zap.Field) *apperr.Error {
	e := apperr.Classify(err)
	fields = append(fields, zap.String("op", op))
	fields = append(fields, e.LogFields()...)
	switch e.Kind {
	case apperr.KindValidation, apperr.KindDuplicateKey, apperr.KindNotFound:
		s.log.Info("course operation rejected", fields...)
	case apperr.KindConnection:
		s.log.Warn("course operation failed: database unavailable", fields...)
	default:
		s.log.Error("course operation failed", fields...)
	}
	return e
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound(fmt.Errorf("invalid course id %q: %w", id, err))
	}
	return oid, nil
}
