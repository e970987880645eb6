// internal/app/features/courses/view.go
package courses

import (
	"net/http"

	"github.com/dalemusser/coursecatalog/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeView handles GET /courses/{id} and GET /courses/{id}/api.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "courses.get")
	defer cancel()

	c, err := h.Catalog.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c)
}
