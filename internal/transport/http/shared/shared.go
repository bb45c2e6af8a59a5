package shared

import (
	"encoding/json"
	"net/http"

	dErrors "claimsys/pkg/domain-errors"
)

// WriteError translates a domain error to the JSON error envelope. Validation
// and business-rule failures surface their message; everything else stays
// opaque so driver details never cross the boundary.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	status := dErrors.ToHTTPStatus(code)

	message := "internal error"
	switch code {
	case dErrors.CodeValidation, dErrors.CodeInvariantViolation,
		dErrors.CodeBadRequest, dErrors.CodeNotFound, dErrors.CodeUnauthorized:
		message = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  string(code),
	})
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
