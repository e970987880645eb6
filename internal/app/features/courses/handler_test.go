package courses_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/dalemusser/coursecatalog/internal/app/features/courses"
	"github.com/dalemusser/coursecatalog/internal/app/services/catalog"
	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
	"github.com/dalemusser/coursecatalog/internal/app/system/readiness"
	"github.com/dalemusser/coursecatalog/internal/domain/models"
	"github.com/dalemusser/coursecatalog/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type readyConns struct{ err error }

func (c readyConns) Acquire(context.Context) (*mongoconn.Conn, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &mongoconn.Conn{ID: "test"}, nil
}

type response struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func newRouter(conns readyConns) (chi.Router, *testutil.MemCourses) {
	mem := testutil.NewMemCourses()
	logger := zap.NewNop()
	h := courses.NewHandler(catalog.New(mem, logger), logger)
	gate := readiness.New(conns, courses.WriteError, logger)
	r := chi.NewRouter()
	r.Mount("/courses", courses.Routes(h, gate))
	return r, mem
}

func serve(r http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *testutil.ResponseRecorder) response {
	t.Helper()
	var resp response
	rec.DecodeJSON(t, &resp)
	return resp
}

func decodeCourse(t *testing.T, rec *testutil.ResponseRecorder) models.Course {
	t.Helper()
	var c models.Course
	if err := json.Unmarshal(decode(t, rec).Data, &c); err != nil {
		t.Fatalf("decode course: %v", err)
	}
	return c
}

func decodeCourses(t *testing.T, rec *testutil.ResponseRecorder) []models.Course {
	t.Helper()
	var cs []models.Course
	if err := json.Unmarshal(decode(t, rec).Data, &cs); err != nil {
		t.Fatalf("decode courses: %v", err)
	}
	return cs
}

func create(t *testing.T, r http.Handler, body map[string]any) models.Course {
	t.Helper()
	rec := serve(r, testutil.NewJSONRequest("POST", "/courses", body))
	rec.AssertStatus(t, http.StatusCreated)
	return decodeCourse(t, rec)
}

func TestCreate_JSON(t *testing.T) {
	r, _ := newRouter(readyConns{})

	rec := serve(r, testutil.NewJSONRequest("POST", "/courses", map[string]any{
		"courseName": " Web Programming ",
		"courseCode": "cpan212",
		"credits":    3,
		"instructor": "Dr. Chen",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	resp := decode(t, rec)
	if !resp.Success {
		t.Error("expected success=true")
	}
	c := decodeCourse(t, rec)
	if c.CourseCode != "CPAN212" || c.CourseName != "Web Programming" {
		t.Errorf("not normalized: %q / %q", c.CourseCode, c.CourseName)
	}
	if !c.IsActive || c.Semester != models.SemesterFall {
		t.Errorf("defaults not applied: active=%v semester=%q", c.IsActive, c.Semester)
	}
	if got, want := rec.Header().Get("Location"), "/courses/"+c.ID.Hex(); got != want {
		t.Errorf("Location: got %q, want %q", got, want)
	}
}

func TestCreate_CreditsAsString(t *testing.T) {
	r, _ := newRouter(readyConns{})
	c := create(t, r, map[string]any{
		"courseName": "Physics for Engineers",
		"courseCode": "PHYS141",
		"credits":    "3.5",
		"semester":   "Winter",
	})
	if c.Credits != 3.5 || c.Semester != models.SemesterWinter {
		t.Errorf("got credits %v semester %q", c.Credits, c.Semester)
	}
}

func TestCreate_HexCreditsRejected(t *testing.T) {
	r, mem := newRouter(readyConns{})
	rec := serve(r, testutil.NewJSONRequest("POST", "/courses", map[string]any{
		"courseName": "Physics for Engineers",
		"courseCode": "PHYS141",
		"credits":    "0x1.8p1",
	}))
	rec.AssertStatus(t, http.StatusBadRequest)
	resp := decode(t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "credits" {
		t.Errorf("errors: got %v, want one on credits", resp.Errors)
	}
	if mem.Len() != 0 {
		t.Errorf("stored courses: got %d, want 0", mem.Len())
	}
}

func TestCreate_FormValidationErrors(t *testing.T) {
	r, mem := newRouter(readyConns{})

	rec := serve(r, testutil.NewFormRequest("POST", "/courses", url.Values{
		"courseName": {"X"},
		"courseCode": {"BAD"},
		"credits":    {"1.25"},
	}))
	rec.AssertStatus(t, http.StatusBadRequest)

	resp := decode(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
	want := []string{"courseName", "courseCode", "credits"}
	if len(resp.Errors) != len(want) {
		t.Fatalf("errors: got %d (%v), want %d", len(resp.Errors), resp.Errors, len(want))
	}
	for i, f := range want {
		if resp.Errors[i].Field != f {
			t.Errorf("errors[%d].field: got %q, want %q", i, resp.Errors[i].Field, f)
		}
	}
	if resp.Error != resp.Errors[0].Message {
		t.Errorf("error: got %q, want first field message %q", resp.Error, resp.Errors[0].Message)
	}
	if mem.Inserts != 0 {
		t.Errorf("inserts: got %d, want 0", mem.Inserts)
	}
}

func TestCreate_FormCheckbox(t *testing.T) {
	r, _ := newRouter(readyConns{})

	rec := serve(r, testutil.NewFormRequest("POST", "/courses", url.Values{
		"courseName": {"Statistics"},
		"courseCode": {"STAT200"},
		"credits":    {"3"},
		"semester":   {"Summer"},
		"isActive":   {"on"},
	}))
	rec.AssertStatus(t, http.StatusCreated)
	if c := decodeCourse(t, rec); !c.IsActive {
		t.Error("expected isActive=true from checked checkbox")
	}
}

func TestCreate_Duplicate(t *testing.T) {
	r, _ := newRouter(readyConns{})
	body := map[string]any{"courseName": "Web Programming", "courseCode": "CPAN212", "credits": 3}
	create(t, r, body)

	body["courseCode"] = "cpan212"
	rec := serve(r, testutil.NewJSONRequest("POST", "/courses", body))
	rec.AssertStatus(t, http.StatusConflict)
	if got, want := decode(t, rec).Error, "Course code already exists. Please use a different code."; got != want {
		t.Errorf("error: got %q, want %q", got, want)
	}
}

func TestCreate_InvalidJSON(t *testing.T) {
	r, _ := newRouter(readyConns{})

	rec := serve(r, testutil.NewJSONRequest("POST", "/courses", "{not json"))
	rec.AssertStatus(t, http.StatusBadRequest)
	resp := decode(t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "body" {
		t.Errorf("errors: got %v, want one error on body", resp.Errors)
	}
}

func TestList(t *testing.T) {
	r, _ := newRouter(readyConns{})
	create(t, r, map[string]any{"courseName": "Statistics", "courseCode": "STAT200", "credits": 3})
	create(t, r, map[string]any{"courseName": "Calculus", "courseCode": "MATH201", "credits": 4})
	create(t, r, map[string]any{"courseName": "Cybersecurity", "courseCode": "CYBR301", "credits": 4, "isActive": false})

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"all", "/courses", []string{"CYBR301", "MATH201", "STAT200"}},
		{"api active only", "/courses/api", []string{"MATH201", "STAT200"}},
		{"credit range", "/courses/api/credits?min=3.5&max=6", []string{"MATH201"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, testutil.NewRequest("GET", tt.target))
			rec.AssertStatus(t, http.StatusOK)
			if got := decode(t, rec).Count; got != len(tt.want) {
				t.Errorf("count: got %d, want %d", got, len(tt.want))
			}
			cs := decodeCourses(t, rec)
			if len(cs) != len(tt.want) {
				t.Fatalf("data: got %d courses, want %d", len(cs), len(tt.want))
			}
			for i, code := range tt.want {
				if cs[i].CourseCode != code {
					t.Errorf("data[%d]: got %q, want %q", i, cs[i].CourseCode, code)
				}
			}
		})
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	r, _ := newRouter(readyConns{})
	rec := serve(r, testutil.NewRequest("GET", "/courses/api"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"data":[]`)
	rec.AssertContains(t, `"count":0`)
}

func TestCreditRange_BadParams(t *testing.T) {
	r, _ := newRouter(readyConns{})

	tests := []struct {
		name   string
		target string
		field  string
	}{
		{"missing min", "/courses/api/credits?max=3", "min"},
		{"non-numeric max", "/courses/api/credits?min=1&max=lots", "max"},
		{"inverted", "/courses/api/credits?min=5&max=1", "min"},
		{"NaN min", "/courses/api/credits?min=NaN&max=3", "min"},
		{"infinite max", "/courses/api/credits?min=1&max=Inf", "max"},
		{"hex max", "/courses/api/credits?min=1&max=0x6", "max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, testutil.NewRequest("GET", tt.target))
			rec.AssertStatus(t, http.StatusBadRequest)
			resp := decode(t, rec)
			if len(resp.Errors) == 0 || resp.Errors[0].Field != tt.field {
				t.Errorf("errors: got %v, want first on %q", resp.Errors, tt.field)
			}
		})
	}
}

func TestView(t *testing.T) {
	r, _ := newRouter(readyConns{})
	c := create(t, r, map[string]any{"courseName": "Biology for Tech", "courseCode": "BIOL120", "credits": 3})

	for _, target := range []string{"/courses/" + c.ID.Hex(), "/courses/" + c.ID.Hex() + "/api"} {
		rec := serve(r, testutil.NewRequest("GET", target))
		rec.AssertStatus(t, http.StatusOK)
		if got := decodeCourse(t, rec); got.CourseCode != "BIOL120" {
			t.Errorf("%s: got %q, want BIOL120", target, got.CourseCode)
		}
	}

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		rec := serve(r, testutil.NewRequest("GET", "/courses/"+id))
		rec.AssertStatus(t, http.StatusNotFound)
		if got := decode(t, rec).Error; got != "Course not found." {
			t.Errorf("error: got %q, want %q", got, "Course not found.")
		}
	}
}

func TestUpdate_FormUncheckedDeactivates(t *testing.T) {
	r, _ := newRouter(readyConns{})
	c := create(t, r, map[string]any{"courseName": "Engineering Design", "courseCode": "ENGR150", "credits": 2})

	rec := serve(r, testutil.NewFormRequest("POST", "/courses/"+c.ID.Hex()+"/edit", url.Values{
		"courseName": {"Engineering Design I"},
		"courseCode": {"ENGR150"},
		"credits":    {"2.5"},
		"semester":   {"Fall"},
	}))
	rec.AssertStatus(t, http.StatusOK)

	got := decodeCourse(t, rec)
	if got.IsActive {
		t.Error("expected isActive=false when checkbox is unchecked")
	}
	if got.Credits != 2.5 || got.CourseName != "Engineering Design I" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestUpdate_JSONPartialKeepsFields(t *testing.T) {
	r, _ := newRouter(readyConns{})
	c := create(t, r, map[string]any{"courseName": "Chemistry", "courseCode": "CHEM105", "credits": 3, "instructor": "Dr. Okafor"})

	rec := serve(r, testutil.NewJSONRequest("PUT", "/courses/"+c.ID.Hex(), map[string]any{"credits": 4}))
	rec.AssertStatus(t, http.StatusOK)

	got := decodeCourse(t, rec)
	if got.Credits != 4 || !got.IsActive || got.Instructor != "Dr. Okafor" {
		t.Errorf("partial update: got %+v", got)
	}
}

func TestUpdate_Missing(t *testing.T) {
	r, mem := newRouter(readyConns{})

	rec := serve(r, testutil.NewJSONRequest("PUT", "/courses/"+primitive.NewObjectID().Hex(), map[string]any{
		"courseName": "Chemistry", "courseCode": "CHEM105", "credits": 3,
	}))
	rec.AssertStatus(t, http.StatusNotFound)
	if mem.Len() != 0 {
		t.Errorf("stored courses: got %d, want 0", mem.Len())
	}
}

func TestDelete_Twice(t *testing.T) {
	r, _ := newRouter(readyConns{})
	c := create(t, r, map[string]any{"courseName": "Mobile Development", "courseCode": "CPAN213", "credits": 3})

	rec := serve(r, testutil.NewRequest("DELETE", "/courses/"+c.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)
	if got := decodeCourse(t, rec); got.ID != c.ID {
		t.Errorf("deleted: got %s, want %s", got.ID.Hex(), c.ID.Hex())
	}

	rec = serve(r, testutil.NewRequest("POST", "/courses/"+c.ID.Hex()+"/delete"))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestGate_UnavailableBlocksRequests(t *testing.T) {
	cause := &mongoconn.ConnectionError{Cause: errors.New("server selection timeout: 10.0.0.5:27017")}
	r, mem := newRouter(readyConns{err: cause})

	reqs := []*http.Request{
		testutil.NewRequest("GET", "/courses"),
		testutil.NewJSONRequest("POST", "/courses", map[string]any{"courseName": "Web", "courseCode": "CPAN212", "credits": 3}),
		testutil.NewRequest("DELETE", "/courses/"+primitive.NewObjectID().Hex()),
	}
	for _, req := range reqs {
		rec := serve(r, req)
		rec.AssertStatus(t, http.StatusServiceUnavailable)
		rec.AssertNotContains(t, "10.0.0.5")
		if decode(t, rec).Success {
			t.Errorf("%s %s: expected success=false", req.Method, req.URL.Path)
		}
	}
	if mem.Inserts != 0 {
		t.Errorf("inserts: got %d, want 0", mem.Inserts)
	}
}
