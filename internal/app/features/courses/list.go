// internal/app/features/courses/list.go
package courses

import (
	"net/http"

	"github.com/dalemusser/coursecatalog/internal/app/system/apperr"
	"github.com/dalemusser/coursecatalog/internal/app/system/courseval"
	"github.com/dalemusser/coursecatalog/internal/app/system/inputval"
	"github.com/dalemusser/coursecatalog/internal/app/system/normalize"
	"github.com/dalemusser/coursecatalog/internal/app/system/timeouts"
)

// ServeList handles GET /courses: every course, sorted by code.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "courses.list")
	defer cancel()

	cs, err := h.Catalog.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeList(w, cs)
}

// ServeListAPI handles GET /courses/api: active courses, sorted by code.
func (h *Handler) ServeListAPI(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "courses.list_api")
	defer cancel()

	cs, err := h.Catalog.ListAPI(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeList(w, cs)
}

// ServeCreditRange handles GET /courses/api/credits?min=&max=.
func (h *Handler) ServeCreditRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := &inputval.Result{}
	min := creditParam(res, "min", "Minimum credits", q.Get("min"))
	max := creditParam(res, "max", "Maximum credits", q.Get("max"))
	if res.HasErrors() {
		WriteError(w, r, apperr.Validation(res))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "courses.credit_range")
	defer cancel()

	cs, err := h.Catalog.ListByCredits(ctx, min, max)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeList(w, cs)
}

func creditParam(res *inputval.Result, field, label, raw string) float64 {
	raw = normalize.QueryParam(raw)
	if raw == "" {
		res.Add(field, "required", label+" is required.")
		return 0
	}
	v, ok := courseval.ParseCredits(raw)
	if !ok {
		res.Add(field, "number", label+" must be a number.")
		return 0
	}
	return v
}
