package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "claimsys/internal/auth/handler"
	claimshandler "claimsys/internal/claims/handler"
	"claimsys/internal/platform/middleware"
)

// NewRouter wires all public endpoints. Transport concerns only; handlers
// delegate to their services.
func NewRouter(
	auth *authhandler.Handler,
	records *claimshandler.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	auth.Register(r)
	records.Register(r)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
