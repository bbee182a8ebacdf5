package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/atinyakov/holocron/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// envelope is the body of every response.
type envelope struct {
	Msg    string `json:"msg"`
	Result any    `json:"result"`
}

func writeJSON(w http.ResponseWriter, status int, msg string, result any) {
	if result == nil {
		result = struct{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Msg: msg, Result: result})
}

// statusFor maps model errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrReferential):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError reports err to the client. Unexpected errors are logged and
// hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, status, "internal error", nil)
		return
	}
	writeJSON(w, status, err.Error(), nil)
}

// decodeBody reads a JSON object from the request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", models.ErrValidation)
		}
		return fmt.Errorf("%w: malformed JSON body: %v", models.ErrValidation, err)
	}
	return nil
}

// pathID parses the positive integer URL parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", models.ErrValidation, name, raw)
	}
	return id, nil
}
