package calendarhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paysched/internal/domain/calendar"
	"paysched/internal/requestctx"
	"paysched/internal/transport/http/api"
	"paysched/internal/transport/http/middleware"
	"paysched/internal/transport/http/shared"
)

type Handler struct {
	Store    *calendar.Store
	Provider *calendar.Provider
}

func NewHandler(db *pgxpool.Pool) *Handler {
	store := calendar.NewStore(db)
	return &Handler{Store: store, Provider: calendar.NewProvider(store)}
}

type holidayPayload struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
	Region    string `json:"region"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/holidays", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
	})
}

// handleList returns the effective holidays for a range, recurring
// entries projected onto each year, the same view the date engine
// adjusts against.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, -1)

	v := shared.NewValidator()
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, ok := v.Date("from", raw); ok {
			from = parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, ok := v.Date("to", raw); ok {
			to = parsed
		}
	}
	v.DateOrder("from", from, "to", to)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	set, err := h.Provider.HolidaysInRange(r.Context(), from, to, r.URL.Query().Get("region"))
	if errors.Is(err, calendar.ErrDataUnavailable) {
		api.Fail(w, http.StatusServiceUnavailable, "data_unavailable", "holiday store unavailable", requestctx.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_range", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}

	holidays := make([]calendar.Holiday, 0, len(set))
	for _, holiday := range set {
		holidays = append(holidays, holiday)
	}
	sortHolidays(holidays)
	api.Success(w, map[string]any{"holidays": holidays}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload holidayPayload
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid or unrecognized request fields", requestctx.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "holiday name is required")
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.Create(r.Context(), calendar.Holiday{
		Date:      date,
		Name:      payload.Name,
		Recurring: payload.Recurring,
		Region:    payload.Region,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holiday_create_failed", "failed to create holiday", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, requestctx.GetRequestID(r.Context()))
}

func sortHolidays(holidays []calendar.Holiday) {
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
}
