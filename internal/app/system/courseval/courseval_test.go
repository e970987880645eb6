package courseval

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/dalemusser/coursecatalog/internal/domain/models"
)

func validPayload() Payload {
	return Payload{
		CourseName: String("Web Programming"),
		CourseCode: String("CPAN212"),
		Credits:    String("3"),
	}
}

func TestBuildAppliesDefaults(t *testing.T) {
	c, res := Build(validPayload())
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %s", res.All())
	}
	if c.Semester != models.SemesterFall {
		t.Errorf("Semester: got %q, want %q", c.Semester, models.SemesterFall)
	}
	if !c.IsActive {
		t.Error("IsActive: got false, want true")
	}
	if c.Description != "" || c.Instructor != "" {
		t.Errorf("optional fields: got %q / %q, want empty", c.Description, c.Instructor)
	}
	if c.Credits != 3 {
		t.Errorf("Credits: got %v, want 3", c.Credits)
	}
}

func TestBuildNormalizes(t *testing.T) {
	p := Payload{
		CourseName:  String("  Web Programming  "),
		CourseCode:  String(" cpan212 "),
		Credits:     String(" 3.5 "),
		Description: String("  Intro  "),
		Instructor:  String(" Dr. Smith "),
		Semester:    String(" Winter "),
		IsActive:    Bool(false),
	}
	c, res := Build(p)
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %s", res.All())
	}
	if c.CourseName != "Web Programming" {
		t.Errorf("CourseName: got %q", c.CourseName)
	}
	if c.CourseCode != "CPAN212" {
		t.Errorf("CourseCode: got %q, want %q", c.CourseCode, "CPAN212")
	}
	if c.Credits != 3.5 {
		t.Errorf("Credits: got %v, want 3.5", c.Credits)
	}
	if c.Description != "Intro" || c.Instructor != "Dr. Smith" {
		t.Errorf("text fields not trimmed: %q / %q", c.Description, c.Instructor)
	}
	if c.Semester != models.SemesterWinter {
		t.Errorf("Semester: got %q", c.Semester)
	}
	if c.IsActive {
		t.Error("IsActive: got true, want false")
	}
}

func TestBuildCreditsGrid(t *testing.T) {
	tests := []struct {
		raw  string
		ok   bool
		rule string
	}{
		{"0.5", true, ""},
		{"1.5", true, ""},
		{"6", true, ""},
		{"6.5", false, "lte"},
		{"1.25", false, "halfstep"},
		{"0.4", false, "gte"},
		{"0", false, "gte"},
		{"-1", false, "gte"},
		{"abc", false, "number"},
		{"", false, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p := validPayload()
			p.Credits = String(tt.raw)
			_, res := Build(p)
			if tt.ok {
				if res.HasErrors() {
					t.Fatalf("credits %q: unexpected errors: %s", tt.raw, res.All())
				}
				return
			}
			if len(res.Errors) != 1 {
				t.Fatalf("credits %q: got %d errors (%s), want 1", tt.raw, len(res.Errors), res.All())
			}
			if res.Errors[0].Field != "credits" || res.Errors[0].Rule != tt.rule {
				t.Errorf("credits %q: got %s/%s, want credits/%s", tt.raw, res.Errors[0].Field, res.Errors[0].Rule, tt.rule)
			}
		})
	}
}

func TestValidCredits(t *testing.T) {
	tests := []struct {
		in   float64
		want bool
	}{
		{0.5, true},
		{1.5, true},
		{6, true},
		{6.5, false},
		{1.25, false},
		{0.4, false},
	}
	for _, tt := range tests {
		if got := ValidCredits(tt.in); got != tt.want {
			t.Errorf("ValidCredits(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuildCollectsEveryFailure(t *testing.T) {
	p := Payload{
		CourseName:  String("A"),
		CourseCode:  String("history101"),
		Credits:     String("9"),
		Description: String(strings.Repeat("x", 501)),
		Instructor:  String(strings.Repeat("y", 101)),
		Semester:    String("Spring"),
	}
	_, res := Build(p)
	want := []string{"courseName", "courseCode", "credits", "description", "instructor", "semester"}
	got := res.Fields()
	if len(got) != len(want) {
		t.Fatalf("Fields: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildMissingRequired(t *testing.T) {
	_, res := Build(Payload{})
	want := []string{"courseName", "courseCode", "credits"}
	got := res.Fields()
	if len(got) != len(want) {
		t.Fatalf("Fields: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
	if res.First() != "Course name is required." {
		t.Errorf("First: got %q", res.First())
	}
}

func TestBuildCourseCodeRules(t *testing.T) {
	tests := []struct {
		code string
		ok   bool
	}{
		{"cpan212", true},
		{"MAT101", true},
		{"CP212", false},
		{"CPAN21", false},
		{"CPANX21", false},
		{"CPAN2123", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			p := validPayload()
			p.CourseCode = String(tt.code)
			_, res := Build(p)
			if res.HasErrors() == tt.ok {
				t.Errorf("code %q: HasErrors=%v, want %v (%s)", tt.code, res.HasErrors(), !tt.ok, res.All())
			}
		})
	}
}

func TestBuildSemesterNotCoerced(t *testing.T) {
	p := validPayload()
	p.Semester = String("fall")
	_, res := Build(p)
	if !res.HasErrors() || res.Errors[0].Field != "semester" {
		t.Fatalf("lower-case semester should be rejected, got %s", res.All())
	}

	p.Semester = String("   ")
	c, res := Build(p)
	if res.HasErrors() {
		t.Fatalf("blank semester should default, got %s", res.All())
	}
	if c.Semester != models.DefaultSemester {
		t.Errorf("Semester: got %q, want default", c.Semester)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	f := func(name, code, credits, desc, inst, sem string) bool {
		p := Payload{
			CourseName:  &name,
			CourseCode:  &code,
			Credits:     &credits,
			Description: &desc,
			Instructor:  &inst,
			Semester:    &sem,
		}
		once := Normalize(p)
		twice := Normalize(once)
		return *once.CourseName == *twice.CourseName &&
			*once.CourseCode == *twice.CourseCode &&
			*once.Credits == *twice.Credits &&
			*once.Description == *twice.Description &&
			*once.Instructor == *twice.Instructor &&
			*once.Semester == *twice.Semester
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestNormalizeKeepsAbsentFields(t *testing.T) {
	n := Normalize(Payload{CourseCode: String(" abc123 ")})
	if n.CourseName != nil || n.Credits != nil || n.IsActive != nil {
		t.Error("absent fields must stay nil")
	}
	if *n.CourseCode != "ABC123" {
		t.Errorf("CourseCode: got %q", *n.CourseCode)
	}
}

func TestMergeOverlaysAndRevalidates(t *testing.T) {
	existing, res := Build(validPayload())
	if res.HasErrors() {
		t.Fatal(res.All())
	}

	// Partial update keeps untouched fields.
	merged, res := Merge(existing, Payload{Instructor: String("  Dr. Lee ")})
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %s", res.All())
	}
	if merged.Instructor != "Dr. Lee" || merged.CourseCode != "CPAN212" || merged.Credits != 3 {
		t.Errorf("merge result wrong: %+v", merged)
	}

	// An invalid overlay is caught against the whole record.
	_, res = Merge(existing, Payload{Credits: String("1.25")})
	if !res.HasErrors() || res.Errors[0].Field != "credits" {
		t.Errorf("expected credits failure, got %s", res.All())
	}

	// Clearing a required field fails.
	_, res = Merge(existing, Payload{CourseName: String("   ")})
	if !res.HasErrors() || res.Errors[0].Rule != "required" {
		t.Errorf("expected required failure, got %s", res.All())
	}
}

func TestCheck(t *testing.T) {
	c, _ := Build(validPayload())
	if res := Check(c); res.HasErrors() {
		t.Errorf("Check on built course: %s", res.All())
	}
	c.Credits = 7
	if res := Check(c); !res.HasErrors() {
		t.Error("Check should reject credits 7")
	}
}

func TestParseCredits(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"3", 3, true},
		{" 1.5 ", 1.5, true},
		{"", 0, false},
		{"3abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Infinity", 0, false},
		{"0x1.8p1", 0, false},
		{"0x3", 0, false},
		{"1_0", 0, false},
		{"1e400", 0, false},
		{".5", 0.5, true},
		{"3.", 3, true},
		{"2.5e0", 2.5, true},
	}
	for _, tt := range tests {
		got, ok := ParseCredits(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseCredits(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
