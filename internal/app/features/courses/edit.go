// internal/app/features/courses/edit.go
package courses

import (
	"net/http"

	"github.com/dalemusser/coursecatalog/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// HandleUpdate handles PUT /courses/{id} and POST /courses/{id}/edit.
// Fields missing from the body keep their stored values.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r, true)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "courses.update")
	defer cancel()

	c, err := h.Catalog.Update(ctx, chi.URLParam(r, "id"), p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c)
}
