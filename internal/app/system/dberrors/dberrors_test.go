package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

const dupMsg = `E11000 duplicate key error collection: course_catalog.courses index: uniq_courses_code dup key: { courseCode: "CPAN212" }`

func dupWriteException(msg string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Index: 0, Code: 11000, Message: msg}},
	}
}

func TestIsDuplicate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"write exception 11000", dupWriteException(dupMsg), true},
		{"command error 11000", mongo.CommandError{Code: 11000, Message: dupMsg}, true},
		{"wrapped", fmt.Errorf("insert: %w", dupWriteException(dupMsg)), true},
		{"typed", &DuplicateKeyError{Field: "courseCode"}, true},
		{"validation 121", mongo.CommandError{Code: 121, Message: "Document failed validation"}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.err); got != tt.want {
				t.Errorf("IsDuplicate: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDuplicateField(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"write exception", dupWriteException(dupMsg), "courseCode"},
		{"command error", mongo.CommandError{Code: 11000, Message: dupMsg}, "courseCode"},
		{"legacy message without field", dupWriteException(`E11000 duplicate key error index: db.courses.$courseCode_1 dup key: { : "CPAN212" }`), ""},
		{"typed", &DuplicateKeyError{Field: "courseName"}, "courseName"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DuplicateField(tt.err); got != tt.want {
				t.Errorf("DuplicateField: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsDocumentValidation(t *testing.T) {
	if !IsDocumentValidation(mongo.CommandError{Code: 121, Message: "Document failed validation"}) {
		t.Error("command error 121 should be a validation failure")
	}
	we := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 121, Message: "Document failed validation"}}}
	if !IsDocumentValidation(we) {
		t.Error("write exception 121 should be a validation failure")
	}
	if IsDocumentValidation(dupWriteException(dupMsg)) {
		t.Error("duplicate key is not a validation failure")
	}
	if IsDocumentValidation(errors.New("boom")) {
		t.Error("plain error is not a validation failure")
	}
}

func TestIsConnectivity(t *testing.T) {
	if !IsConnectivity(mongo.ErrClientDisconnected) {
		t.Error("ErrClientDisconnected should be a connectivity failure")
	}
	if IsConnectivity(errors.New("boom")) {
		t.Error("plain error is not a connectivity failure")
	}
	if IsConnectivity(nil) {
		t.Error("nil is not a connectivity failure")
	}
}

func TestDuplicateKeyErrorUnwrap(t *testing.T) {
	cause := dupWriteException(dupMsg)
	err := &DuplicateKeyError{Field: "courseCode", Err: cause}
	var we mongo.WriteException
	if !errors.As(err, &we) || len(we.WriteErrors) != 1 {
		t.Error("DuplicateKeyError should unwrap to its cause")
	}
	if err.Error() != "duplicate key on courseCode" {
		t.Errorf("Error: got %q", err.Error())
	}
}
