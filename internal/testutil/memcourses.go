package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/coursecatalog/internal/app/services/catalog"
	coursestore "github.com/dalemusser/coursecatalog/internal/app/store/courses"
	"github.com/dalemusser/coursecatalog/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemCourses is an in-memory catalog.Repository that enforces the unique
// courseCode index and reports store-native errors. It is also a
// catalog.RepositorySource; set Unavailable to simulate a dead database.
type MemCourses struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]models.Course
	Inserts int

	Unavailable error
}

func NewMemCourses() *MemCourses {
	return &MemCourses{byID: map[primitive.ObjectID]models.Course{}}
}

func (m *MemCourses) Repository(context.Context) (catalog.Repository, error) {
	if m.Unavailable != nil {
		return nil, m.Unavailable
	}
	return m, nil
}

// Len reports how many courses are stored.
func (m *MemCourses) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func (m *MemCourses) codeTaken(code string, except primitive.ObjectID) bool {
	for id, c := range m.byID {
		if id != except && c.CourseCode == code {
			return true
		}
	}
	return false
}

func (m *MemCourses) Insert(_ context.Context, c models.Course) (models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codeTaken(c.CourseCode, primitive.NilObjectID) {
		return models.Course{}, &coursestore.DuplicateKeyError{Field: "courseCode"}
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.byID[c.ID] = c
	m.Inserts++
	return c, nil
}

func (m *MemCourses) GetByID(_ context.Context, id primitive.ObjectID) (models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return models.Course{}, coursestore.ErrNotFound
	}
	return c, nil
}

func (m *MemCourses) UpdateByID(_ context.Context, id primitive.ObjectID, c models.Course) (models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.byID[id]
	if !ok {
		return models.Course{}, coursestore.ErrNotFound
	}
	if m.codeTaken(c.CourseCode, id) {
		return models.Course{}, &coursestore.DuplicateKeyError{Field: "courseCode"}
	}
	c.ID = id
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	m.byID[id] = c
	return c, nil
}

func (m *MemCourses) DeleteByID(_ context.Context, id primitive.ObjectID) (models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return models.Course{}, coursestore.ErrNotFound
	}
	delete(m.byID, id)
	return c, nil
}

func (m *MemCourses) List(_ context.Context, activeOnly bool) ([]models.Course, error) {
	return m.filter(func(c models.Course) bool { return !activeOnly || c.IsActive }), nil
}

func (m *MemCourses) FindByCreditRange(_ context.Context, min, max float64) ([]models.Course, error) {
	return m.filter(func(c models.Course) bool {
		return c.IsActive && c.Credits >= min && c.Credits <= max
	}), nil
}

func (m *MemCourses) Count(context.Context) (int64, error) {
	return int64(m.Len()), nil
}

// ReplaceAll is atomic: a duplicate code in cs leaves the store unchanged.
func (m *MemCourses) ReplaceAll(_ context.Context, cs []models.Course) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	for _, c := range cs {
		if seen[c.CourseCode] {
			return nil, &coursestore.DuplicateKeyError{Field: "courseCode"}
		}
		seen[c.CourseCode] = true
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	m.byID = make(map[primitive.ObjectID]models.Course, len(cs))
	out := make([]models.Course, 0, len(cs))
	for _, c := range cs {
		c.ID = primitive.NewObjectID()
		c.CreatedAt = now
		c.UpdatedAt = now
		m.byID[c.ID] = c
		m.Inserts++
		out = append(out, c)
	}
	return out, nil
}

func (m *MemCourses) filter(keep func(models.Course) bool) []models.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Course{}
	for _, c := range m.byID {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseCode < out[j].CourseCode })
	return out
}
