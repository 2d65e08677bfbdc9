package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/0x0BSoD/newsBoard/internal/bookmarks"
	"github.com/0x0BSoD/newsBoard/internal/logging"
	"github.com/0x0BSoD/newsBoard/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondErr maps workflow errors onto HTTP statuses.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respondError(w, http.StatusBadRequest, validationMessage(verrs))
	case errors.Is(err, bookmarks.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, bookmarks.ErrConflict), errors.Is(err, storage.ErrDuplicate):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, bookmarks.ErrInvalid), errors.Is(err, errBadRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logging.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func validationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}
