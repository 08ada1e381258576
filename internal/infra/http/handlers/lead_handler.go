package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

const maxBodyBytes = 1 << 20

// HandlerFunc is an http handler that reports failures instead of writing
// them. The router turns the error into the response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

type LeadHandler struct {
	LeadUC *usecase.LeadUseCase
	Logger *zap.Logger
}

func NewLeadHandler(uc *usecase.LeadUseCase, logger *zap.Logger) *LeadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{LeadUC: uc, Logger: logger}
}

// List handles GET /api/leads?search=&status=
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	leads, err := h.LeadUC.List(r.Context(), usecase.ListLeadsInput{
		Search: q.Get("search"),
		Status: q.Get("status"),
	})
	if err != nil {
		return err
	}
	return h.respond(w, http.StatusOK, leads)
}

// Get handles GET /api/leads/{id}
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, ok := leadID(r)
	if !ok {
		return usecase.NewNotFoundError()
	}

	lead, err := h.LeadUC.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return h.respond(w, http.StatusOK, lead)
}

// Create handles POST /api/leads
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var input usecase.LeadInput
	if err := decodeBody(w, r, &input); err != nil {
		return err
	}

	lead, err := h.LeadUC.Create(r.Context(), input)
	if err != nil {
		return err
	}
	return h.respond(w, http.StatusCreated, lead)
}

// Update handles PUT /api/leads/{id}
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, ok := leadID(r)
	if !ok {
		return usecase.NewNotFoundError()
	}

	var input usecase.LeadInput
	if err := decodeBody(w, r, &input); err != nil {
		// an unknown id is reported as 404 whatever the body looks like
		if _, getErr := h.LeadUC.Get(r.Context(), id); getErr != nil {
			return getErr
		}
		return err
	}

	lead, err := h.LeadUC.Update(r.Context(), id, input)
	if err != nil {
		return err
	}
	return h.respond(w, http.StatusOK, lead)
}

// Delete handles DELETE /api/leads/{id}
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, ok := leadID(r)
	if !ok {
		return usecase.NewNotFoundError()
	}

	if err := h.LeadUC.Delete(r.Context(), id); err != nil {
		return err
	}
	return h.respond(w, http.StatusOK, MessageResponse{Message: "Lead deleted successfully"})
}

// respond writes v as the response. Once the status is sent an encode
// failure can only be logged.
func (h *LeadHandler) respond(w http.ResponseWriter, status int, v interface{}) error {
	if err := writeJSON(w, status, v); err != nil {
		h.Logger.Warn("encode response failed", zap.Int("status", status), zap.Error(err))
	}
	return nil
}

// leadID reads the {id} path segment. A value that is not an integer can not
// name a stored lead.
func leadID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &usecase.Error{Kind: usecase.KindValidation, Message: usecase.MsgInvalidJSON, Err: err}
	}
	return nil
}
