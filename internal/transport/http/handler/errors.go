package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/campustrade/verify-api/internal/domain"
)

// httpError maps domain sentinels to HTTP status codes. Recognized errors
// surface their message; anything else is logged and masked as a generic
// internal failure so diagnostics never leak to the caller.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrExpired):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		slog.Error("unhandled error", "err", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
