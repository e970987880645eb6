// internal/app/system/inputval/inputval.go
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dalemusser/coursecatalog/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule on one input field.
type FieldError struct {
	Field   string // wire name of the field, e.g. "courseCode"
	Rule    string // validator tag that failed, e.g. "max"
	Message string // human-readable, safe to show to callers
}

// Result collects every field failure from a single validation pass,
// in struct field declaration order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed. A nil Result has no errors.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// First returns the first message, or "" when there are none.
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// Messages returns every message in order.
func (r *Result) Messages() []string {
	if !r.HasErrors() {
		return nil
	}
	out := make([]string, len(r.Errors))
	for i, fe := range r.Errors {
		out[i] = fe.Message
	}
	return out
}

// All joins every message with "; ".
func (r *Result) All() string {
	return strings.Join(r.Messages(), "; ")
}

// Fields returns the failing field names in order.
func (r *Result) Fields() []string {
	if !r.HasErrors() {
		return nil
	}
	out := make([]string, len(r.Errors))
	for i, fe := range r.Errors {
		out[i] = fe.Field
	}
	return out
}

// Add appends a failure that was detected outside struct-tag validation.
func (r *Result) Add(field, rule, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Rule: rule, Message: message})
}

// Replace rewrites the failure recorded for field/rule, if present.
func (r *Result) Replace(field, rule, rewrite, message string) {
	for i := range r.Errors {
		if r.Errors[i].Field == field && r.Errors[i].Rule == rule {
			r.Errors[i].Rule = rewrite
			r.Errors[i].Message = message
		}
	}
}

// Error makes a Result usable as an error value.
func (r *Result) Error() string {
	if !r.HasErrors() {
		return "validation passed"
	}
	return "validation failed: " + r.All()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "coursecode", func(fl validator.FieldLevel) bool {
		return IsCourseCode(fl.Field().String())
	})
	mustRegister(v, "halfstep", func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Float32, reflect.Float64:
			return IsHalfStep(fl.Field().Float())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return true
		default:
			return false
		}
	})
	mustRegister(v, "semester", func(fl validator.FieldLevel) bool {
		return models.IsValidSemester(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("inputval: register %q: %v", tag, err))
	}
}

// Validate runs the `validate` struct tags on v and returns every failure.
// Messages use the field's `label` tag, falling back to the Go field name.
func Validate(v any) *Result {
	res := &Result{}
	err := validate.Struct(v)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Add("", "invalid", "Input could not be validated.")
		return res
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		res.Add(fe.Field(), fe.Tag(), message(fe, labelFor(t, fe)))
	}
	return res
}

func labelFor(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if l := sf.Tag.Get("label"); l != "" {
			return l
		}
	}
	return fe.StructField()
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(strings.Fields(fe.Param()), ", "))
	case "coursecode":
		return label + " must follow a format like CPAN212 or MATH101."
	case "halfstep":
		return label + " must be in half-point increments (0.5, 1, 1.5, etc.)."
	case "semester":
		names := make([]string, len(models.Semesters))
		for i, s := range models.Semesters {
			names[i] = string(s)
		}
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(names, ", "))
	default:
		return label + " is invalid."
	}
}
