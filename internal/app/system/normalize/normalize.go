// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Text trims surrounding whitespace and preserves case.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// CourseCode trims and upper-cases a course code. Applying it twice
// yields the same result as applying it once.
func CourseCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Semester trims a semester name. Case is preserved so that unknown
// spellings are rejected by validation rather than silently coerced.
func Semester(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a query-string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Checkbox interprets an HTML checkbox or boolean-ish form value.
func Checkbox(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
