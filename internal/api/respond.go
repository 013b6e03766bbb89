package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/server"
)

// writeJSON encodes payload with the given status.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error *domain.APIError `json:"error"`
}

// writeError maps an error onto its HTTP response. Errors outside the
// APIError taxonomy are treated as internal and their detail is kept out of
// the response body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	server.AddError(r.Context(), err)

	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		h.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		apiErr = domain.ErrServer("internal error")
	}

	h.writeJSON(w, apiErr.HTTPStatusCode(), errorBody{Error: apiErr})
}

// decodeBody strict-decodes a JSON request body.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidRequest("invalid JSON body: " + err.Error())
	}
	return nil
}
