// internal/app/system/readiness/gate.go
package readiness

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/coursecatalog/internal/app/system/apperr"
	"github.com/dalemusser/coursecatalog/internal/app/system/mongoconn"
	"go.uber.org/zap"
)

// Acquirer hands out the shared database connection.
type Acquirer interface {
	Acquire(ctx context.Context) (*mongoconn.Conn, error)
}

// ErrorWriter renders a classified failure to the client.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, e *apperr.Error)

// Gate blocks requests until the database connection is available.
type Gate struct {
	conns   Acquirer
	log     *zap.Logger
	onError ErrorWriter
}

// New builds a Gate. A nil onError writes a minimal JSON 503.
func New(conns Acquirer, onError ErrorWriter, logger *zap.Logger) *Gate {
	if onError == nil {
		onError = writeUnavailable
	}
	return &Gate{conns: conns, log: logger, onError: onError}
}

// Middleware acquires the connection for every request. On failure the
// wrapped handler is never invoked.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := g.conns.Acquire(r.Context())
		if err != nil {
			e := apperr.Connection(err)
			g.log.Warn("request blocked: database unavailable",
				append([]zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				}, e.LogFields()...)...)
			g.onError(w, r, e)
			return
		}
		next.ServeHTTP(w, r.WithContext(mongoconn.WithConn(r.Context(), conn)))
	})
}

// FromContext returns the connection acquired by the gate for this request.
func FromContext(ctx context.Context) (*mongoconn.Conn, bool) {
	return mongoconn.FromContext(ctx)
}

func writeUnavailable(w http.ResponseWriter, _ *http.Request, e *apperr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status())
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   e.Message(),
	})
}
