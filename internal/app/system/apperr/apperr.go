// internal/app/system/apperr/apperr.go
// Package apperr defines the closed set of failure kinds the catalog
// reports to callers, and maps storage and validation errors onto them.
package apperr

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/dalemusser/coursecatalog/internal/app/system/inputval"
	"go.uber.org/zap"
)

// Kind is a failure category. The set is closed.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindDuplicateKey
	KindConnection
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindConnection:
		return "connection"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Caller-facing text for kinds that never expose their cause.
const (
	MsgConnection = "The course catalog is temporarily unavailable. Please try again shortly."
	MsgNotFound   = "Course not found."
	MsgUnknown    = "An unexpected error occurred. Please try again."
	msgDuplicate  = "A course with the same unique value already exists."
)

// Error is a classified failure. Cause is for logs only.
type Error struct {
	Kind   Kind
	Fields []inputval.FieldError // KindValidation
	Field  string                // KindDuplicateKey, when known
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Validation wraps a failed validation result.
func Validation(res *inputval.Result) *Error {
	e := &Error{Kind: KindValidation, Cause: res}
	if res != nil {
		e.Fields = res.Errors
	}
	return e
}

// Duplicate reports a unique-key conflict on field (may be "").
func Duplicate(field string, cause error) *Error {
	return &Error{Kind: KindDuplicateKey, Field: field, Cause: cause}
}

// Connection reports that the store could not be reached.
func Connection(cause error) *Error {
	return &Error{Kind: KindConnection, Cause: cause}
}

// NotFound reports that the addressed record does not exist.
func NotFound(cause error) *Error {
	return &Error{Kind: KindNotFound, Cause: cause}
}

// Unknown wraps anything else.
func Unknown(cause error) *Error {
	return &Error{Kind: KindUnknown, Cause: cause}
}

// Messages returns the text shown to callers: one entry per invalid field
// for validation failures, one generic sentence otherwise.
func (e *Error) Messages() []string {
	switch e.Kind {
	case KindValidation:
		out := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			out = append(out, f.Message)
		}
		if len(out) == 0 {
			out = append(out, "The submitted course is invalid.")
		}
		return out
	case KindDuplicateKey:
		if e.Field == "" {
			return []string{msgDuplicate}
		}
		return []string{humanize(e.Field) + " already exists. Please use a different " + shortName(e.Field) + "."}
	case KindConnection:
		return []string{MsgConnection}
	case KindNotFound:
		return []string{MsgNotFound}
	default:
		return []string{MsgUnknown}
	}
}

// Message returns the first caller-facing message.
func (e *Error) Message() string {
	return e.Messages()[0]
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicateKey:
		return http.StatusConflict
	case KindConnection:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// LogFields returns structured fields carrying the full detail.
func (e *Error) LogFields() []zap.Field {
	fields := []zap.Field{zap.String("error_kind", e.Kind.String())}
	if e.Field != "" {
		fields = append(fields, zap.String("field", e.Field))
	}
	if len(e.Fields) > 0 {
		names := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			names[i] = f.Field
		}
		fields = append(fields, zap.Strings("invalid_fields", names))
	}
	if e.Cause != nil {
		fields = append(fields, zap.Error(e.Cause))
	}
	return fields
}

// humanize turns "courseCode" into "Course code".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// shortName returns the last word of a humanized field: "courseCode" -> "code".
func shortName(field string) string {
	words := strings.Fields(humanize(field))
	return strings.ToLower(words[len(words)-1])
}
