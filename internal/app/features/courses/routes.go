// internal/app/features/courses/routes.go
package courses

import (
	"github.com/dalemusser/coursecatalog/internal/app/system/readiness"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the catalog routes under whatever base path the caller
// chooses (typically "/courses" from bootstrap). Every route sits behind
// the readiness gate.
//
// Example from bootstrap:
//
//	h := courses.NewHandler(svc, logger)
//	r.Mount("/courses", courses.Routes(h, gate))
func Routes(h *Handler, gate *readiness.Gate) chi.Router {
	r := chi.NewRouter()
	r.Use(gate.Middleware)

	// LIST / CREATE
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	// JSON API (active courses only)
	r.Get("/api", h.ServeListAPI)
	r.Get("/api/credits", h.ServeCreditRange)

	// VIEW
	r.Get("/{id}", h.ServeView)
	r.Get("/{id}/api", h.ServeView)

	// EDIT
	r.Put("/{id}", h.HandleUpdate)
	r.Post("/{id}/edit", h.HandleUpdate)

	// DELETE
	r.Delete("/{id}", h.HandleDelete)
	r.Post("/{id}/delete", h.HandleDelete)

	return r
}
