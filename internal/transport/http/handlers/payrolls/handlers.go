package payrollshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paysched/internal/domain/calendar"
	"paysched/internal/domain/payrolls"
	"paysched/internal/domain/schedule"
	"paysched/internal/requestctx"
	"paysched/internal/transport/http/api"
	"paysched/internal/transport/http/middleware"
	"paysched/internal/transport/http/shared"
)

type Handler struct {
	Store    *payrolls.Store
	Schedule *schedule.Service
}

func NewHandler(db *pgxpool.Pool, scheduleSvc *schedule.Service) *Handler {
	return &Handler{Store: payrolls.NewStore(db), Schedule: scheduleSvc}
}

// payrollPayload is the closed set of writable payroll fields. Unknown
// fields are rejected at decode time.
type payrollPayload struct {
	ClientName              string `json:"clientName"`
	Cycle                   string `json:"cycle"`
	DateType                string `json:"dateType"`
	DateValue               *int   `json:"dateValue"`
	ProcessingDaysBeforeEFT int    `json:"processingDaysBeforeEft"`
	Status                  string `json:"status"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payrolls", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{payrollID}", h.handleGet)
		r.Put("/{payrollID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	status := r.URL.Query().Get("status")

	list, err := h.Store.List(r.Context(), status, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payrolls_list_failed", "failed to list payrolls", requestctx.GetRequestID(r.Context()))
		return
	}
	total, err := h.Store.Count(r.Context(), status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payrolls_list_failed", "failed to list payrolls", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"payrolls": list, "total": total}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	payroll, err := h.Store.Get(r.Context(), chi.URLParam(r, "payrollID"))
	if errors.Is(err, payrolls.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll not found", requestctx.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_get_failed", "failed to load payroll", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, payroll, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	candidate := payrollFromPayload(payload)
	if candidate.Status == "" {
		candidate.Status = payrolls.StatusImplementation
	}
	if !h.validate(w, r, candidate) {
		return
	}

	id, err := h.Store.Create(r.Context(), candidate)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_create_failed", "failed to create payroll", requestctx.GetRequestID(r.Context()))
		return
	}

	// New payrolls get their schedule immediately, out to the standard
	// horizon.
	dates, err := h.Schedule.EnsureDatesExist(r.Context(), id, h.Schedule.Today(), h.Schedule.Horizon())
	if err != nil {
		h.failGeneration(w, r, err)
		return
	}

	payroll, err := h.Store.Get(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_create_failed", "failed to load created payroll", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]any{"payroll": payroll, "datesGenerated": len(dates)}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	existing, err := h.Store.Get(r.Context(), chi.URLParam(r, "payrollID"))
	if errors.Is(err, payrolls.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll not found", requestctx.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_update_failed", "failed to load payroll", requestctx.GetRequestID(r.Context()))
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	updated := payrollFromPayload(payload)
	updated.ID = existing.ID
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if !h.validate(w, r, updated) {
		return
	}

	if err := h.Store.Update(r.Context(), updated); err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_update_failed", "failed to update payroll", requestctx.GetRequestID(r.Context()))
		return
	}

	// A schedule-relevant change invalidates every future date; past
	// rows stay as generated.
	recalculated := false
	if existing.ScheduleConfigChanged(updated) {
		if _, err := h.Schedule.Recalculate(r.Context(), updated.ID); err != nil {
			h.failGeneration(w, r, err)
			return
		}
		recalculated = true
	}

	payroll, err := h.Store.Get(r.Context(), updated.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_update_failed", "failed to load updated payroll", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"payroll": payroll, "recalculated": recalculated}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request) (payrollPayload, bool) {
	var payload payrollPayload
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid or unrecognized request fields", requestctx.GetRequestID(r.Context()))
		return payrollPayload{}, false
	}
	return payload, true
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request, p payrolls.Payroll) bool {
	v := shared.NewValidator()
	v.Required("clientName", p.ClientName, "client name is required")
	v.Required("cycle", p.Cycle, "cycle is required")
	v.Enum("cycle", p.Cycle, payrolls.Cycles(), "unknown cycle")
	v.Required("dateType", p.DateType, "date type is required")
	v.Enum("dateType", p.DateType, payrolls.DateTypes(), "unknown date type")
	v.Enum("status", p.Status, payrolls.Statuses(), "unknown status")
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return false
	}
	if err := payrolls.ValidateConfig(p); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_configuration", err.Error(), requestctx.GetRequestID(r.Context()))
		return false
	}
	return true
}

func (h *Handler) failGeneration(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())
	switch {
	case errors.Is(err, schedule.ErrGenerationInFlight):
		api.Fail(w, http.StatusConflict, "generation_in_flight", "another generation is running for this payroll", reqID)
	case errors.Is(err, payrolls.ErrInvalidConfiguration):
		api.Fail(w, http.StatusBadRequest, "invalid_configuration", err.Error(), reqID)
	case errors.Is(err, schedule.ErrDataUnavailable), errors.Is(err, calendar.ErrDataUnavailable):
		api.Fail(w, http.StatusServiceUnavailable, "data_unavailable", "schedule data store unavailable", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "schedule_generation_failed", "failed to generate schedule", reqID)
	}
}

func payrollFromPayload(p payrollPayload) payrolls.Payroll {
	return payrolls.Payroll{
		ClientName:              p.ClientName,
		Cycle:                   p.Cycle,
		DateType:                p.DateType,
		DateValue:               p.DateValue,
		ProcessingDaysBeforeEFT: p.ProcessingDaysBeforeEFT,
		Status:                  p.Status,
	}
}
