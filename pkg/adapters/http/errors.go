package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/thermoprops/pkg/domain"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor maps domain errors to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrWorkspaceNotFound),
		errors.Is(err, domain.ErrPresetNotFound),
		errors.Is(err, domain.ErrUnknownFluid),
		errors.Is(err, domain.ErrUnknownPlot):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrEngineUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, domain.ErrRejectedInput):
		return http.StatusUnprocessableEntity, "rejected"
	case errors.Is(err, domain.ErrInvalidNumber),
		errors.Is(err, domain.ErrInvalidCandidate),
		errors.Is(err, domain.ErrFluidRequired),
		errors.Is(err, domain.ErrInvalidViewMode),
		errors.Is(err, domain.ErrUnknownProperty):
		return http.StatusUnprocessableEntity, "invalid_input"
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	msg := domain.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	} else {
		s.logger.Warn("Request rejected", "path", r.URL.Path, "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
