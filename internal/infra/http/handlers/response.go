package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

const (
	msgNotFound      = "Not found"
	msgInternalError = "Internal server error"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// ErrorWriter turns handler errors into {"error": ...} responses.
type ErrorWriter struct {
	// ExposeErrors passes the raw message of unexpected failures to the client.
	ExposeErrors bool
	Logger       *zap.Logger
}

func NewErrorWriter(expose bool, logger *zap.Logger) ErrorWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ErrorWriter{ExposeErrors: expose, Logger: logger}
}

// Status maps err to the HTTP status code sent for it.
func Status(err error) int {
	switch usecase.KindOf(err) {
	case usecase.KindValidation:
		return http.StatusBadRequest
	case usecase.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (ew ErrorWriter) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	message := ew.message(err)

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		ew.Logger.Error("request failed", fields...)
	} else {
		ew.Logger.Debug("request rejected", fields...)
	}

	_ = writeJSON(w, status, ErrorResponse{Error: message})
}

func (ew ErrorWriter) message(err error) string {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) && ucErr.Kind != usecase.KindUnhandled {
		return ucErr.Message
	}
	if ew.ExposeErrors {
		return err.Error()
	}
	return msgInternalError
}

// NotFound answers any request no route matched.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	_ = writeJSON(w, http.StatusNotFound, ErrorResponse{Error: msgNotFound})
}
