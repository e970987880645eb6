// internal/app/features/courses/respond.go
package courses

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/coursecatalog/internal/app/system/apperr"
)

// envelope is the JSON shape of every catalog response.
//
//	{ "success": true, "count": 2, "data": [...] }
//	{ "success": false, "error": "Course not found." }
//	{ "success": false, "error": "...", "errors": [{"field":"credits","message":"..."}] }
type envelope struct {
	Success bool           `json:"success"`
	Count   *int           `json:"count,omitempty"`
	Data    any            `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Errors  []fieldMessage `json:"errors,omitempty"`
}

type fieldMessage struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeList[T any](w http.ResponseWriter, items []T) {
	n := len(items)
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &n, Data: items})
}

// WriteError renders a classified failure. Causes never reach the client.
// It also serves as the readiness gate's error writer.
func WriteError(w http.ResponseWriter, _ *http.Request, e *apperr.Error) {
	body := envelope{Error: e.Message()}
	if e.Kind == apperr.KindValidation {
		for _, f := range e.Fields {
			body.Errors = append(body.Errors, fieldMessage{Field: f.Field, Message: f.Message})
		}
	}
	writeJSON(w, e.Status(), body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	WriteError(w, r, apperr.Classify(err))
}
