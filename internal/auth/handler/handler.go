package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"claimsys/internal/transport/http/shared"
	dErrors "claimsys/pkg/domain-errors"
)

// Service defines the interface for credential checks.
type Service interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// Handler handles the login endpoint.
type Handler struct {
	logger *slog.Logger
	auth   Service
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, auth: auth}
}

// Register registers the login route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.handleLogin)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.auth.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeUnauthorized) {
			h.logger.ErrorContext(ctx, "authenticate failed",
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
