// internal/app/system/inputval/validators.go
package inputval

import (
	"math"
	"regexp"
)

// Three or four capital letters followed by three digits: CPAN212, MAT101.
var courseCodeRe = regexp.MustCompile(`^[A-Z]{3,4}[0-9]{3}$`)

// IsCourseCode reports whether s is an already-normalized course code.
func IsCourseCode(s string) bool {
	return courseCodeRe.MatchString(s)
}

// IsHalfStep reports whether f is a whole multiple of 0.5.
func IsHalfStep(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	d := f * 2
	return d == math.Trunc(d)
}
