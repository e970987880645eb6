// internal/app/system/courseval/courseval.go
package courseval

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dalemusser/coursecatalog/internal/app/system/inputval"
	"github.com/dalemusser/coursecatalog/internal/app/system/normalize"
	"github.com/dalemusser/coursecatalog/internal/domain/models"
)

// Payload is a candidate write. A nil field means "not provided": Build
// applies the default, Merge keeps the existing value.
type Payload struct {
	CourseName  *string
	CourseCode  *string
	Credits     *string // raw text; coerced to a number by Build/Merge
	Description *string
	Instructor  *string
	Semester    *string
	IsActive    *bool
}

// courseInput is the shape the validator sees. Field order is the order
// failures are reported in.
type courseInput struct {
	CourseName  string   `json:"courseName" validate:"required,min=2,max=100" label:"Course name"`
	CourseCode  string   `json:"courseCode" validate:"required,max=7,coursecode" label:"Course code"`
	Credits     *float64 `json:"credits" validate:"required,gte=0.5,lte=6,halfstep" label:"Credits"`
	Description string   `json:"description" validate:"max=500" label:"Description"`
	Instructor  string   `json:"instructor" validate:"max=100" label:"Instructor"`
	Semester    string   `json:"semester" validate:"required,semester" label:"Semester"`
}

// Normalize trims every text field and upper-cases the course code.
// Absent fields stay absent. Normalize(Normalize(p)) == Normalize(p).
func Normalize(p Payload) Payload {
	out := Payload{IsActive: p.IsActive}
	out.CourseName = mapStr(p.CourseName, normalize.Text)
	out.CourseCode = mapStr(p.CourseCode, NormalizeCode)
	out.Credits = mapStr(p.Credits, normalize.Text)
	out.Description = mapStr(p.Description, normalize.Text)
	out.Instructor = mapStr(p.Instructor, normalize.Text)
	out.Semester = mapStr(p.Semester, normalize.Semester)
	return out
}

// NormalizeCode trims and upper-cases a course code.
func NormalizeCode(s string) string {
	return normalize.CourseCode(s)
}

// decimalNumber is plain decimal notation with an optional exponent. Hex
// floats, digit separators, Inf and NaN do not match.
var decimalNumber = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// ParseCredits coerces raw credit text to a number. Blank, non-decimal and
// non-finite input is rejected.
func ParseCredits(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if !decimalNumber.MatchString(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ValidCredits reports whether c is within [0.5, 6] and a multiple of 0.5.
func ValidCredits(c float64) bool {
	return c >= 0.5 && c <= 6 && inputval.IsHalfStep(c)
}

// Build turns a create request into a normalized record. Defaults are
// description "", instructor "", semester Fall and isActive true. The
// returned Result lists every failing field.
func Build(p Payload) (models.Course, *inputval.Result) {
	return apply(models.NewCourse(), false, p)
}

// Merge overlays the provided fields of p on existing and re-validates the
// whole resulting record.
func Merge(existing models.Course, p Payload) (models.Course, *inputval.Result) {
	return apply(existing, true, p)
}

// Check validates an already-built record.
func Check(c models.Course) *inputval.Result {
	credits := c.Credits
	return inputval.Validate(inputFor(c, &credits))
}

func apply(base models.Course, haveCredits bool, p Payload) (models.Course, *inputval.Result) {
	n := Normalize(p)
	c := base

	if n.CourseName != nil {
		c.CourseName = *n.CourseName
	}
	if n.CourseCode != nil {
		c.CourseCode = *n.CourseCode
	}
	if n.Description != nil {
		c.Description = *n.Description
	}
	if n.Instructor != nil {
		c.Instructor = *n.Instructor
	}
	if n.Semester != nil && *n.Semester != "" {
		c.Semester = models.Semester(*n.Semester)
	}
	if n.IsActive != nil {
		c.IsActive = *n.IsActive
	}

	var credits *float64
	if haveCredits {
		v := base.Credits
		credits = &v
	}
	notNumber := false
	if n.Credits != nil {
		credits = nil
		if v, ok := ParseCredits(*n.Credits); ok {
			credits = &v
		} else {
			notNumber = *n.Credits != ""
		}
	}
	if credits != nil {
		c.Credits = *credits
	}

	res := inputval.Validate(inputFor(c, credits))
	if notNumber {
		res.Replace("credits", "required", "number", "Credits must be a number.")
	}
	return c, res
}

func inputFor(c models.Course, credits *float64) courseInput {
	return courseInput{
		CourseName:  c.CourseName,
		CourseCode:  c.CourseCode,
		Credits:     credits,
		Description: c.Description,
		Instructor:  c.Instructor,
		Semester:    string(c.Semester),
	}
}

func mapStr(s *string, fn func(string) string) *string {
	if s == nil {
		return nil
	}
	v := fn(*s)
	return &v
}

// String is a convenience for building payloads in code and tests.
func String(s string) *string { return &s }

// Bool is a convenience for building payloads in code and tests.
func Bool(b bool) *bool { return &b }
