package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// fail переводит доменные ошибки в коды ответа. Всё нераспознанное логируется и прячется за 500.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string][]string{"errors": ve.Problems})
	case errors.Is(err, errs.ErrAlreadyExists), errors.Is(err, errs.ErrInvalidArgument):
		badRequest(w, errs.Public(err))
	case errors.Is(err, errs.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": errs.Public(err)})
	default:
		h.log.Error("request failed",
			"request_id", RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// decode читает JSON-тело. false - значит 400 уже отправлен.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "No data provided or body is not valid JSON")
		return false
	}
	return true
}
