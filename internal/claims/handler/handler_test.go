package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimsys/internal/claims"
	"claimsys/internal/claims/service"
	"claimsys/internal/claims/store"
	"claimsys/internal/platform/logger"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

// passAuth stands in for the bearer-token middleware; token validation has
// its own tests.
func passAuth(next http.Handler) http.Handler { return next }

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	validator := claims.NewValidator(claims.WithClock(func() time.Time { return testNow }))
	svc := service.New(
		store.NewMemoryTx(store.NewMemory()),
		validator,
		service.WithClock(func() time.Time { return testNow }),
	)
	h := New(svc, logger.New(), passAuth)

	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validPolicyholderBody() map[string]any {
	return map[string]any{
		"id":             "PH1",
		"name":           "Ada Smith",
		"contact_number": "+15551234567",
		"email":          "ada@example.com",
		"date_of_birth":  "1990-05-01",
	}
}

func seedHolderAndPolicy(t *testing.T, router http.Handler) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/policyholders", validPolicyholderBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/policies", map[string]any{
		"id":              "POL1",
		"policyholder_id": "PH1",
		"type":            "auto",
		"start_date":      "2025-01-01",
		"end_date":        "2025-12-31",
		"coverage_amount": 10000,
		"premium":         500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateAndGetPolicyholder(t *testing.T) {
	router := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/policyholders", validPolicyholderBody())
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/policyholders/PH1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got policyholderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "1990-05-01", got.DateOfBirth)
}

func TestCreatePolicyholderUnderage(t *testing.T) {
	router := newRouter(t)

	body := validPolicyholderBody()
	body["date_of_birth"] = "2015-05-01"
	rec := doJSON(t, router, http.MethodPost, "/policyholders", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "18 years old")
}

func TestCreatePolicyholderMalformedDate(t *testing.T) {
	router := newRouter(t)

	body := validPolicyholderBody()
	body["date_of_birth"] = "01/05/1990"
	rec := doJSON(t, router, http.MethodPost, "/policyholders", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPolicyholderNotFound(t *testing.T) {
	router := newRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/policyholders/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPolicyholdersEmpty(t *testing.T) {
	router := newRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/policyholders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestUpdatePolicyholderPartial(t *testing.T) {
	router := newRouter(t)
	seedHolderAndPolicy(t, router)

	rec := doJSON(t, router, http.MethodPut, "/policyholders/PH1", map[string]any{
		"name": "Ada Lovelace",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/policyholders/PH1", nil)
	var got policyholderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestCreateClaimOverCoverage(t *testing.T) {
	router := newRouter(t)
	seedHolderAndPolicy(t, router)

	rec := doJSON(t, router, http.MethodPost, "/claims", map[string]any{
		"id":               "CLM1",
		"policy_id":        "POL1",
		"date_of_incident": "2025-03-10",
		"description":      "collision",
		"amount":           20000,
		"date_submitted":   "2025-03-20",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "coverage")
}

func TestCreateClaimInvalidStatus(t *testing.T) {
	router := newRouter(t)
	seedHolderAndPolicy(t, router)

	rec := doJSON(t, router, http.MethodPost, "/claims", map[string]any{
		"id":               "CLM1",
		"policy_id":        "POL1",
		"date_of_incident": "2025-03-10",
		"description":      "collision",
		"amount":           100,
		"status":           "Reopened",
		"date_submitted":   "2025-03-20",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid claim status")
}

func TestDeletePolicyCascades(t *testing.T) {
	router := newRouter(t)
	seedHolderAndPolicy(t, router)

	rec := doJSON(t, router, http.MethodPost, "/claims", map[string]any{
		"id":               "CLM1",
		"policy_id":        "POL1",
		"date_of_incident": "2025-03-10",
		"description":      "collision",
		"amount":           100,
		"date_submitted":   "2025-03-20",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodDelete, "/policies/POL1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/claims/CLM1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMissingPolicyholder(t *testing.T) {
	router := newRouter(t)
	rec := doJSON(t, router, http.MethodDelete, "/policyholders/nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestInvalidBody(t *testing.T) {
	router := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/policyholders", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
