// internal/app/features/courses/handler.go
package courses

import (
	"github.com/dalemusser/coursecatalog/internal/app/services/catalog"
	"go.uber.org/zap"
)

// Handler serves the course catalog over HTTP. Responses are JSON; every
// failure reaching a handler is already classified and logged by the
// catalog service.
type Handler struct {
	Catalog *catalog.Service
	Log     *zap.Logger
}

// NewHandler constructs a courses Handler bound to the catalog service.
func NewHandler(svc *catalog.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog: svc,
		Log:     logger,
	}
}
