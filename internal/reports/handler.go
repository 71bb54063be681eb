package reports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/suninet/suninet/internal/platform/httpx"
	"github.com/suninet/suninet/internal/subscribers"
)

// Handler manages report endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	now     func() time.Time
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, now func() time.Time) *Handler {
	return &Handler{logger: logger, service: service, now: now}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/pending-report", h.pending)
	r.Get("/paid-report", h.paid)
	r.Get("/unpaid-report", h.unpaid)
	r.Get("/reports", h.period)
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	asOf := subscribers.AsOfParam(r, h.now)

	entries, err := h.service.Pending(r.Context(), asOf)
	if err != nil {
		h.logger.Error("pending report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	out := make([]PendingEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toPendingDTO(e))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) paid(w http.ResponseWriter, r *http.Request) {
	asOf := subscribers.AsOfParam(r, h.now)

	customers, err := h.service.Paid(r.Context(), asOf)
	if err != nil {
		h.logger.Error("paid report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	out := make([]subscribers.CustomerWithPaymentDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, subscribers.ToPaymentDTO(c))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) unpaid(w http.ResponseWriter, r *http.Request) {
	asOf := subscribers.AsOfParam(r, h.now)

	customers, err := h.service.Unpaid(r.Context(), asOf)
	if err != nil {
		h.logger.Error("unpaid report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	out := make([]subscribers.CustomerDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, subscribers.ToDTO(c))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter PeriodFilter
	if from, until := q.Get("start_date"), q.Get("end_date"); from != "" || until != "" {
		start, err1 := time.Parse(dateLayout, from)
		end, err2 := time.Parse(dateLayout, until)
		if from == "" || until == "" || err1 != nil || err2 != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid date range")
			return
		}
		filter.StartDate, filter.EndDate = &start, &end
	} else if raw := q.Get("date"); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid date")
			return
		}
		filter.Date = &day
	} else if q.Get("month") != "" && q.Get("year") != "" {
		month, err1 := strconv.Atoi(q.Get("month"))
		year, err2 := strconv.Atoi(q.Get("year"))
		if err1 != nil || err2 != nil || month < 1 || month > 12 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid month/year")
			return
		}
		filter.Month, filter.Year = &month, &year
	}

	asOf := subscribers.AsOfParam(r, h.now)
	report, err := h.service.Period(r.Context(), filter, asOf)
	if err != nil {
		h.logger.Error("period report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPeriodDTO(report))
}
