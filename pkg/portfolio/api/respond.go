// Package api exposes the portfolio service over HTTP using chi.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// ErrorResponse is the error envelope every failed request returns.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// statusFor maps domain sentinels onto HTTP statuses. Conflicts map to 409;
// reorder handlers override that to 503 because a conflict surfacing there
// means the retry budget is exhausted, not that the caller sent a duplicate.
func statusFor(err error) int {
	switch {
	case errors.Is(err, portfolio.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, portfolio.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, portfolio.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, portfolio.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, portfolio.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, portfolio.ErrExternalService):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "invalid credentials"
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "too many requests"
	case http.StatusServiceUnavailable:
		return "service unavailable"
	default:
		return "internal error"
	}
}

// writeError renders the envelope for err. Internal errors are logged but
// their details never leak to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorStatus(w, r, err, statusFor(err))
}

func writeErrorStatus(w http.ResponseWriter, r *http.Request, err error, status int) {
	resp := ErrorResponse{Message: messageFor(status)}
	if status < http.StatusInternalServerError {
		resp.Error = err.Error()
	} else {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// writeReorderError is writeError with conflicts escalated to 503.
func writeReorderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusConflict {
		status = http.StatusServiceUnavailable
	}
	writeErrorStatus(w, r, err, status)
}

// decodeJSON decodes the request body into v, treating malformed JSON as
// invalid input.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return portfolio.ErrInvalidInput
	}
	return nil
}

// pathID parses the named URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, portfolio.ErrInvalidInput
	}
	return id, nil
}
