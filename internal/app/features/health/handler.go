package health

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
	"go.uber.org/zap"
)

// StateReporter exposes the database connection state without dialing.
type StateReporter interface {
	State() mongoconn.State
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Conns StateReporter
	Log   *zap.Logger
}

// NewHandler constructs a health Handler with the connection manager and logger.
func NewHandler(conns StateReporter, logger *zap.Logger) *Handler {
	return &Handler{
		Conns: conns,
		Log:   logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
}

// Serve handles GET /health. It reports the manager's current state and
// never triggers a connection attempt.
//
// When connected: 200 and
//
//	{ "status":"ok", "database":"connected" }
//
// Otherwise: 503 and
//
//	{ "status":"error", "database":"connecting", "message":"Database unavailable" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	state := h.Conns.State()
	resp := healthResponse{
		Status:   "ok",
		Database: state.String(),
	}

	if state != mongoconn.Connected {
		h.Log.Debug("health-check: database not connected", zap.String("state", state.String()))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Message = "Database unavailable"
	}

	_ = json.NewEncoder(w).Encode(resp)
}
