// internal/domain/models/semester.go
package models

// Semester is the term a course is offered in.
type Semester string

// Canonical semester values. Matching is exact; "fall" is not Fall.
const (
	SemesterFall   Semester = "Fall"
	SemesterWinter Semester = "Winter"
	SemesterSummer Semester = "Summer"
)

// DefaultSemester is applied when a create request leaves semester blank.
const DefaultSemester = SemesterFall

// Semesters is the full set of allowed values, in display order.
var Semesters = []Semester{
	SemesterFall,
	SemesterWinter,
	SemesterSummer,
}

// IsValidSemester reports whether s names one of Semesters exactly.
func IsValidSemester(s string) bool {
	for _, v := range Semesters {
		if string(v) == s {
			return true
		}
	}
	return false
}
