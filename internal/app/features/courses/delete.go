// internal/app/features/courses/delete.go
package courses

import (
	"net/http"

	"github.com/dalemusser/coursecatalog/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// HandleDelete handles DELETE /courses/{id} and POST /courses/{id}/delete,
// returning the removed course.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "courses.delete")
	defer cancel()

	c, err := h.Catalog.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c)
}
