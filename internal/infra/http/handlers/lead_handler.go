package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/logger"
	"github.com/xavierca1/lead-intake/internal/infra/metrics"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type LeadHandler struct {
	ListLeadsUC   *usecase.ListLeadsUseCase
	AcceptLeadUC  *usecase.AcceptLeadUseCase
	DeclineLeadUC *usecase.DeclineLeadUseCase
	Logger        *slog.Logger
}

func NewLeadHandler(
	list *usecase.ListLeadsUseCase,
	accept *usecase.AcceptLeadUseCase,
	decline *usecase.DeclineLeadUseCase,
	log *slog.Logger,
) *LeadHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LeadHandler{
		ListLeadsUC:   list,
		AcceptLeadUC:  accept,
		DeclineLeadUC: decline,
		Logger:        log,
	}
}

// Routes registers the lead endpoints. mutate wraps only the accept and
// decline routes (rate limiting).
func (h *LeadHandler) Routes(r chi.Router, mutate ...func(http.Handler) http.Handler) {
	r.Route("/api/leads", func(r chi.Router) {
		r.Get("/", h.ListByStatus)
		r.Get("/invited", h.ListInvited)
		r.Get("/accepted", h.ListAccepted)

		r.Group(func(r chi.Router) {
			r.Use(mutate...)
			r.Post("/accept/{id}", h.Accept)
			r.Post("/decline/{id}", h.Decline)
		})
	})
}

// ListInvited (GET /api/leads/invited)
func (h *LeadHandler) ListInvited(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, entity.StatusInvited.String())
}

// ListAccepted (GET /api/leads/accepted)
func (h *LeadHandler) ListAccepted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, entity.StatusAccepted.String())
}

// ListByStatus (GET /api/leads?status=Declined)
func (h *LeadHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("status"))
}

func (h *LeadHandler) list(w http.ResponseWriter, r *http.Request, status string) {
	leads, err := h.ListLeadsUC.Execute(r.Context(), status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(NewLeadListResponse(leads))
}

// Accept (POST /api/leads/accept/{id})
func (h *LeadHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, ok := h.leadID(w, r)
	if !ok {
		return
	}

	err := h.AcceptLeadUC.Execute(r.Context(), id)
	metrics.RecordLeadTransition("accept", outcome(err))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Decline (POST /api/leads/decline/{id})
func (h *LeadHandler) Decline(w http.ResponseWriter, r *http.Request) {
	id, ok := h.leadID(w, r)
	if !ok {
		return
	}

	err := h.DeclineLeadUC.Execute(r.Context(), id)
	metrics.RecordLeadTransition("decline", outcome(err))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *LeadHandler) leadID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "lead id must be an integer")
		return 0, false
	}
	return id, true
}

func (h *LeadHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	detail := err.Error()
	if status == http.StatusInternalServerError && usecase.IsTechnicalError(err) {
		detail = "internal error"
	}

	logger.WithContext(r.Context(), h.Logger).WarnContext(r.Context(), "lead request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err),
	)
	writeProblem(w, status, detail)
}

// statusFor maps use case errors to HTTP. An invalid transition stays a 500.
func statusFor(err error) int {
	switch {
	case usecase.HasCode(err, usecase.CodeLeadNotFound):
		return http.StatusNotFound
	case usecase.HasCode(err, usecase.CodeConflict):
		return http.StatusConflict
	case usecase.HasCode(err, usecase.CodeInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	for _, code := range []string{
		usecase.CodeLeadNotFound,
		usecase.CodeInvalidTransition,
		usecase.CodeConflict,
		usecase.CodePersistence,
	} {
		if usecase.HasCode(err, code) {
			return code
		}
	}
	return "error"
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ProblemResponse{
		Title:  http.StatusText(status),
		Detail: detail,
		Status: status,
	})
}
