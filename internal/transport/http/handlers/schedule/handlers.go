package schedulehandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jung-kurt/gofpdf"

	"paysched/internal/domain/calendar"
	"paysched/internal/domain/payrolls"
	"paysched/internal/domain/schedule"
	"paysched/internal/platform/jobs"
	"paysched/internal/requestctx"
	"paysched/internal/transport/http/api"
	"paysched/internal/transport/http/middleware"
	"paysched/internal/transport/http/shared"
)

type Handler struct {
	Payrolls *payrolls.Store
	Store    *schedule.Store
	Service  *schedule.Service
	Jobs     *jobs.Service
}

func NewHandler(db *pgxpool.Pool, service *schedule.Service, jobsSvc *jobs.Service) *Handler {
	return &Handler{
		Payrolls: payrolls.NewStore(db),
		Store:    schedule.NewStore(db),
		Service:  service,
		Jobs:     jobsSvc,
	}
}

type generateRequest struct {
	ToDate string `json:"toDate"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payrolls/{payrollID}/dates", func(r chi.Router) {
		r.Get("/", h.handleListDates)
		r.Post("/generate", h.handleGenerate)
		r.Post("/recalculate", h.handleRecalculate)
		r.Get("/export", h.handleExportPDF)
	})
	r.With(middleware.RequireRole("admin")).Post("/schedule/extend-all", h.handleExtendAll)
	r.Get("/adjustment-rules", h.handleListRules)
}

func (h *Handler) handleListDates(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	payrollID := chi.URLParam(r, "payrollID")
	if _, err := h.Payrolls.Get(r.Context(), payrollID); errors.Is(err, payrolls.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll not found", requestctx.GetRequestID(r.Context()))
		return
	} else if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dates_list_failed", "failed to load payroll", requestctx.GetRequestID(r.Context()))
		return
	}

	from := h.Service.Today()
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "from must be a valid date", requestctx.GetRequestID(r.Context()))
			return
		}
		from = parsed
	}

	dates, err := h.Store.ListDates(r.Context(), payrollID, from)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dates_list_failed", "failed to list payroll dates", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"dates": dates, "from": from.Format("2006-01-02")}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	to := h.Service.Horizon()
	if r.ContentLength != 0 {
		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
			return
		}
		if payload.ToDate != "" {
			parsed, err := shared.ParseDate(payload.ToDate)
			if err != nil {
				api.Fail(w, http.StatusBadRequest, "invalid_date", "toDate must be a valid date", requestctx.GetRequestID(r.Context()))
				return
			}
			to = parsed
		}
	}

	dates, err := h.Service.EnsureDatesExist(r.Context(), chi.URLParam(r, "payrollID"), h.Service.Today(), to)
	if err != nil {
		h.failSchedule(w, r, err)
		return
	}
	api.Success(w, map[string]any{"dates": dates}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	dates, err := h.Service.Recalculate(r.Context(), chi.URLParam(r, "payrollID"))
	if err != nil {
		h.failSchedule(w, r, err)
		return
	}
	api.Success(w, map[string]any{"dates": dates}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleExtendAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.Jobs.RunNow(r.Context(), jobs.JobExtendHorizon, func(ctx context.Context) (any, error) {
		return h.Service.ExtendAll(ctx)
	})
	if err != nil {
		h.failSchedule(w, r, err)
		return
	}
	api.Success(w, result, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleListRules(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	rules, err := h.Store.ListAdjustmentRules(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rules_list_failed", "failed to list adjustment rules", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"rules": rules}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	payrollID := chi.URLParam(r, "payrollID")
	payroll, err := h.Payrolls.Get(r.Context(), payrollID)
	if errors.Is(err, payrolls.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll not found", requestctx.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to load payroll", requestctx.GetRequestID(r.Context()))
		return
	}

	dates, err := h.Store.ListDates(r.Context(), payrollID, h.Service.Today())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to list payroll dates", requestctx.GetRequestID(r.Context()))
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payroll Schedule")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Client: %s", payroll.ClientName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Cycle: %s", payroll.Cycle))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 8, "EFT Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 8, "Adjusted EFT", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 8, "Processing By", "1", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, d := range dates {
		pdf.CellFormat(60, 8, d.OriginalEFTDate.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 8, d.AdjustedEFTDate.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 8, d.ProcessingDate.Format("2006-01-02"), "1", 1, "", false, 0, "")
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=schedule-%s-%s.pdf", payrollID, time.Now().Format("20060102")))
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render schedule pdf", requestctx.GetRequestID(r.Context()))
	}
}

func (h *Handler) failSchedule(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payrolls.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll not found", reqID)
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
