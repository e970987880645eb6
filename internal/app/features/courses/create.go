// internal/app/features/courses/create.go
package courses

import (
	"net/http"

	"github.com/dalemusser/coursecatalog/internal/app/system/timeouts"
)

// HandleCreate handles POST /courses.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r, false)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "courses.create")
	defer cancel()

	c, err := h.Catalog.Create(ctx, p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/courses/"+c.ID.Hex())
	writeData(w, http.StatusCreated, c)
}
