package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{usecase.NewValidationError(usecase.MsgMissingFields), http.StatusBadRequest},
		{usecase.NewNotFoundError(), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", usecase.NewNotFoundError()), http.StatusNotFound},
		{usecase.NewStoreWriteError(errors.New("disk full")), http.StatusInternalServerError},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), tt.err.Error())
	}
}

func TestErrorWriter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)

	tests := []struct {
		name   string
		expose bool
		err    error
		status int
		body   string
	}{
		{"validation", false, usecase.NewValidationError(usecase.MsgMissingFields), 400, `{"error":"Missing required fields"}`},
		{"not found", false, usecase.NewNotFoundError(), 404, `{"error":"Lead not found"}`},
		{"store write hides cause", true, usecase.NewStoreWriteError(errors.New("pq: boom")), 500, `{"error":"Failed to create lead"}`},
		{"unhandled exposed", true, errors.New("pq: relation does not exist"), 500, `{"error":"pq: relation does not exist"}`},
		{"unhandled hidden", false, errors.New("pq: relation does not exist"), 500, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewErrorWriter(tt.expose, zaptest.NewLogger(t)).WriteError(rec, req, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}
