// internal/app/system/apperr/classify.go
package apperr

import (
	"errors"

	"github.com/dalemusser/coursecatalog/internal/app/system/dberrors"
	"github.com/dalemusser/coursecatalog/internal/app/system/inputval"
	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
	"go.mongodb.org/mongo-driver/mongo"
)

// Classify maps any error to exactly one Kind. An *Error anywhere in the
// chain is returned as is. Classify(nil) is nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	var ce *mongoconn.ConnectionError
	if errors.As(err, &ce) {
		return Connection(err)
	}

	var res *inputval.Result
	if errors.As(err, &res) && res.HasErrors() {
		return Validation(res)
	}

	if dberrors.IsDuplicate(err) {
		return Duplicate(dberrors.DuplicateField(err), err)
	}

	if errors.Is(err, dberrors.ErrNotFound) || errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound(err)
	}

	if dberrors.IsDocumentValidation(err) {
		return &Error{
			Kind: KindValidation,
			Fields: []inputval.FieldError{{
				Field:   "document",
				Rule:    "schema",
				Message: "The course was rejected by the database validator. Please check your input and try again.",
			}},
			Cause: err,
		}
	}

	if dberrors.IsConnectivity(err) {
		return Connection(err)
	}

	return Unknown(err)
}
