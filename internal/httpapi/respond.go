package httpapi

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/wasteworks/wte-api/internal/pathway"
	"github.com/wasteworks/wte-api/internal/units"
)

// Error codes carried in error response bodies.
const (
	codeNotFound     = "not_found"
	codeInvalidInput = "invalid_input"
	codeInternal     = "internal"
)

// errorBody is the uniform error response shape.
type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// calcResponse wraps a conversion produced from query parameters.
type calcResponse struct {
	Result    pathway.Result `json:"result"`
	RequestID string         `json:"request_id,omitempty"`
}

// countyResponse wraps a county record together with the conversion of its
// canonical feedstock figure.
type countyResponse struct {
	Record    any            `json:"record"`
	Result    pathway.Result `json:"result"`
	RequestID string         `json:"request_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	s.writeJSON(w, status, errorBody{Error: msg, Code: code, RequestID: requestID(r.Context())})
}

// invalidInput reports whether err belongs to the invalid-input class that
// maps to HTTP 400 rather than 500.
func invalidInput(err error) bool {
	return errors.Is(err, units.ErrUnknownUnit) ||
		errors.Is(err, units.ErrNegativeQuantity) ||
		errors.Is(err, units.ErrNonFiniteQuantity) ||
		errors.Is(err, pathway.ErrUnknownWasteType)
}
