package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"claimsys/internal/claims"
	"claimsys/internal/platform/middleware"
	"claimsys/internal/transport/http/shared"
	dErrors "claimsys/pkg/domain-errors"
)

// Service defines the record operations the handler delegates to.
type Service interface {
	CreatePolicyholder(ctx context.Context, p *claims.Policyholder) error
	GetPolicyholder(ctx context.Context, id string) (*claims.Policyholder, error)
	ListPolicyholders(ctx context.Context) ([]*claims.Policyholder, error)
	UpdatePolicyholder(ctx context.Context, id string, patch claims.PolicyholderPatch) error
	DeletePolicyholder(ctx context.Context, id string) error

	CreatePolicy(ctx context.Context, pol *claims.Policy) error
	GetPolicy(ctx context.Context, id string) (*claims.Policy, error)
	ListPolicies(ctx context.Context) ([]*claims.Policy, error)
	UpdatePolicy(ctx context.Context, id string, patch claims.PolicyPatch) error
	DeletePolicy(ctx context.Context, id string) error

	CreateClaim(ctx context.Context, c *claims.Claim) error
	GetClaim(ctx context.Context, id string) (*claims.Claim, error)
	ListClaims(ctx context.Context) ([]*claims.Claim, error)
	UpdateClaim(ctx context.Context, id string, patch claims.ClaimPatch) error
	DeleteClaim(ctx context.Context, id string) error
}

// Handler is the thin HTTP layer over the record service. It parses requests,
// delegates, and translates outcomes; no business logic lives here.
type Handler struct {
	logger  *slog.Logger
	records Service
	auth    func(http.Handler) http.Handler
}

func New(records Service, logger *slog.Logger, auth func(http.Handler) http.Handler) *Handler {
	return &Handler{logger: logger, records: records, auth: auth}
}

// Register registers the record routes with the chi router. All routes
// require a valid bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/policyholders", h.handleCreatePolicyholder)
		r.Get("/policyholders", h.handleListPolicyholders)
		r.Get("/policyholders/{id}", h.handleGetPolicyholder)
		r.Put("/policyholders/{id}", h.handleUpdatePolicyholder)
		r.Delete("/policyholders/{id}", h.handleDeletePolicyholder)

		r.Post("/policies", h.handleCreatePolicy)
		r.Get("/policies", h.handleListPolicies)
		r.Get("/policies/{id}", h.handleGetPolicy)
		r.Put("/policies/{id}", h.handleUpdatePolicy)
		r.Delete("/policies/{id}", h.handleDeletePolicy)

		r.Post("/claims", h.handleCreateClaim)
		r.Get("/claims", h.handleListClaims)
		r.Get("/claims/{id}", h.handleGetClaim)
		r.Put("/claims/{id}", h.handleUpdateClaim)
		r.Delete("/claims/{id}", h.handleDeleteClaim)
	})
}

// Dates cross the boundary as YYYY-MM-DD strings; a full timestamp is
// accepted and truncated to its date.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeBadRequest, "invalid date: "+s)
	}
	return claims.DateOnly(t), nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Policyholder endpoints

type policyholderRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	DateOfBirth   string `json:"date_of_birth"`
}

type policyholderUpdateRequest struct {
	Name          *string `json:"name"`
	ContactNumber *string `json:"contact_number"`
	Email         *string `json:"email"`
	DateOfBirth   *string `json:"date_of_birth"`
}

type policyholderResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	DateOfBirth   string `json:"date_of_birth"`
}

func toPolicyholderResponse(p *claims.Policyholder) policyholderResponse {
	return policyholderResponse{
		ID:            p.ID,
		Name:          p.Name,
		ContactNumber: p.ContactNumber,
		Email:         p.Email,
		DateOfBirth:   formatDate(p.DateOfBirth),
	}
}

func (h *Handler) handleCreatePolicyholder(w http.ResponseWriter, r *http.Request) {
	var req policyholderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	p := &claims.Policyholder{
		ID:            req.ID,
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		DateOfBirth:   dob,
	}
	if err := h.records.CreatePolicyholder(r.Context(), p); err != nil {
		h.logRejection(r, "create policyholder", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Policyholder created successfully"})
}

func (h *Handler) handleListPolicyholders(w http.ResponseWriter, r *http.Request) {
	ps, err := h.records.ListPolicyholders(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]policyholderResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPolicyholderResponse(p))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetPolicyholder(w http.ResponseWriter, r *http.Request) {
	p, err := h.records.GetPolicyholder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toPolicyholderResponse(p))
}

func (h *Handler) handleUpdatePolicyholder(w http.ResponseWriter, r *http.Request) {
	var req policyholderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	patch := claims.PolicyholderPatch{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		patch.DateOfBirth = &dob
	}
	if err := h.records.UpdatePolicyholder(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		h.logRejection(r, "update policyholder", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Policyholder updated successfully"})
}

func (h *Handler) handleDeletePolicyholder(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeletePolicyholder(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Policyholder deleted successfully"})
}

// Policy endpoints

type policyRequest struct {
	ID             string  `json:"id"`
	PolicyholderID string  `json:"policyholder_id"`
	Type           string  `json:"type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	CoverageAmount float64 `json:"coverage_amount"`
	Premium        float64 `json:"premium"`
}

type policyUpdateRequest struct {
	Type           *string  `json:"type"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	CoverageAmount *float64 `json:"coverage_amount"`
	Premium        *float64 `json:"premium"`
}

type policyResponse struct {
	ID             string  `json:"id"`
	PolicyholderID string  `json:"policyholder_id"`
	Type           string  `json:"type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	CoverageAmount float64 `json:"coverage_amount"`
	Premium        float64 `json:"premium"`
}

func toPolicyResponse(pol *claims.Policy) policyResponse {
	return policyResponse{
		ID:             pol.ID,
		PolicyholderID: pol.PolicyholderID,
		Type:           pol.Type,
		StartDate:      formatDate(pol.StartDate),
		EndDate:        formatDate(pol.EndDate),
		CoverageAmount: pol.CoverageAmount,
		Premium:        pol.Premium,
	}
}

func (h *Handler) handleCreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req policyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	pol := &claims.Policy{
		ID:             req.ID,
		PolicyholderID: req.PolicyholderID,
		Type:           req.Type,
		StartDate:      start,
		EndDate:        end,
		CoverageAmount: req.CoverageAmount,
		Premium:        req.Premium,
	}
	if err := h.records.CreatePolicy(r.Context(), pol); err != nil {
		h.logRejection(r, "create policy", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Policy created successfully"})
}

func (h *Handler) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	pols, err := h.records.ListPolicies(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]policyResponse, 0, len(pols))
	for _, pol := range pols {
		out = append(out, toPolicyResponse(pol))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	pol, err := h.records.GetPolicy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toPolicyResponse(pol))
}

func (h *Handler) handleUpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req policyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	patch := claims.PolicyPatch{
		Type:           req.Type,
		CoverageAmount: req.CoverageAmount,
		Premium:        req.Premium,
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		patch.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		patch.EndDate = &end
	}
	if err := h.records.UpdatePolicy(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		h.logRejection(r, "update policy", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Policy updated successfully"})
}

func (h *Handler) handleDeletePolicy(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeletePolicy(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Policy deleted successfully"})
}

// Claim endpoints

type claimRequest struct {
	ID             string  `json:"id"`
	PolicyID       string  `json:"policy_id"`
	DateOfIncident string  `json:"date_of_incident"`
	Description    string  `json:"description"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	DateSubmitted  string  `json:"date_submitted"`
}

type claimUpdateRequest struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Status      *string  `json:"status"`
}

type claimResponse struct {
	ID             string  `json:"id"`
	PolicyID       string  `json:"policy_id"`
	DateOfIncident string  `json:"date_of_incident"`
	Description    string  `json:"description"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	DateSubmitted  string  `json:"date_submitted"`
}

func toClaimResponse(c *claims.Claim) claimResponse {
	return claimResponse{
		ID:             c.ID,
		PolicyID:       c.PolicyID,
		DateOfIncident: formatDate(c.DateOfIncident),
		Description:    c.Description,
		Amount:         c.Amount,
		Status:         string(c.Status),
		DateSubmitted:  formatDate(c.DateSubmitted),
	}
}

// parseStatus validates an incoming status label. Unknown labels are a bad
// request here, unlike on the read path where they signal corruption.
func parseStatus(label string) (claims.ClaimStatus, error) {
	status, err := claims.ParseClaimStatus(label)
	if err != nil {
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid claim status: "+label)
	}
	return status, nil
}

func (h *Handler) handleCreateClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	incident, err := parseDate(req.DateOfIncident)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	c := &claims.Claim{
		ID:             req.ID,
		PolicyID:       req.PolicyID,
		DateOfIncident: incident,
		Description:    req.Description,
		Amount:         req.Amount,
	}
	if req.Status != "" {
		status, err := parseStatus(req.Status)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		c.Status = status
	}
	if req.DateSubmitted != "" {
		submitted, err := parseDate(req.DateSubmitted)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		c.DateSubmitted = submitted
	}
	if err := h.records.CreateClaim(r.Context(), c); err != nil {
		h.logRejection(r, "create claim", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Claim created successfully"})
}

func (h *Handler) handleListClaims(w http.ResponseWriter, r *http.Request) {
	cs, err := h.records.ListClaims(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]claimResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toClaimResponse(c))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetClaim(w http.ResponseWriter, r *http.Request) {
	c, err := h.records.GetClaim(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toClaimResponse(c))
}

func (h *Handler) handleUpdateClaim(w http.ResponseWriter, r *http.Request) {
	var req claimUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	patch := claims.ClaimPatch{
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		patch.Status = &status
	}
	if err := h.records.UpdateClaim(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		h.logRejection(r, "update claim", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Claim updated successfully"})
}

func (h *Handler) handleDeleteClaim(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeleteClaim(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Claim deleted successfully"})
}

func (h *Handler) logRejection(r *http.Request, op string, err error) {
	ctx := r.Context()
	level := slog.LevelWarn
	if !dErrors.IsDomain(err) || dErrors.Is(err, dErrors.CodeStorage) {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, op+" failed",
		"error", err.Error(),
		"request_id", middleware.GetRequestID(ctx),
	)
}
