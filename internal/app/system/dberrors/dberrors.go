// internal/app/system/dberrors/dberrors.go
// Package dberrors names the storage failures the rest of the app cares
// about, independent of how the MongoDB driver happens to report them.
package dberrors

import (
	"context"
	"errors"
	"regexp"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a lookup by id matches no document.
var ErrNotFound = errors.New("document not found")

// DuplicateKeyError reports a unique-index violation. Field is the
// conflicting key when it could be determined.
type DuplicateKeyError struct {
	Field string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return "duplicate key"
	}
	return "duplicate key on " + e.Field
}

func (e *DuplicateKeyError) Unwrap() error { return e.Err }

// Server error code for a document rejected by a collection validator.
const codeDocumentValidation = 121

// IsDuplicate reports whether err is a unique-index violation
// (codes 11000, 11001, 12582) in any of the driver's error shapes.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var de *DuplicateKeyError
	if errors.As(err, &de) {
		return true
	}
	return mongo.IsDuplicateKeyError(err) || wafflemongo.IsDup(err)
}

// Matches `dup key: { courseCode: "CPAN212" }`. Older servers omit the
// field name (`dup key: { : "CPAN212" }`) and yield no match.
var dupKeyField = regexp.MustCompile(`dup key: \{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*:`)

// DuplicateField extracts the conflicting field name from a duplicate-key
// error, or "" when the server did not report one.
func DuplicateField(err error) string {
	if err == nil {
		return ""
	}
	var de *DuplicateKeyError
	if errors.As(err, &de) && de.Field != "" {
		return de.Field
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if m := dupKeyField.FindStringSubmatch(e.Message); m != nil {
				return m[1]
			}
		}
	}
	if m := dupKeyField.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return ""
}

// IsDocumentValidation reports whether the server rejected a write because
// the document failed the collection's $jsonSchema validator.
func IsDocumentValidation(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorCode(codeDocumentValidation)
	}
	return false
}

// IsConnectivity reports whether err means the database could not be
// reached, as opposed to the server rejecting the operation.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
