package billing

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/suninet/suninet/internal/platform/httpx"
	"github.com/suninet/suninet/internal/subscribers"
)

// Handler manages reconciliation engine endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	now     func() time.Time
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, now func() time.Time) *Handler {
	return &Handler{logger: logger, service: service, now: now}
}

// MountStats registers the statistics route.
func (h *Handler) MountStats(r chi.Router) {
	r.Get("/stats", h.stats)
}

// MountPayments registers the payment route under the customers subtree.
func (h *Handler) MountPayments(r chi.Router) {
	r.Post("/{id}/pay", h.recordPayment)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	asOf := subscribers.AsOfParam(r, h.now)

	stats, err := h.service.Stats(r.Context(), asOf)
	if err != nil {
		h.logger.Error("compute stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

type payRequest struct {
	Amount    int    `json:"amount"`
	Date      string `json:"date"`
	TotalBill int    `json:"total_bill"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid customer id")
		return
	}

	var req payRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed body")
		return
	}

	date := subscribers.ParseDate(req.Date)
	if date.IsZero() {
		date = h.now()
	}

	if err := h.service.RecordPayment(r.Context(), id, req.Amount, date, req.TotalBill); err != nil {
		h.logger.Error("record payment", slog.Any("error", err), slog.Int64("customer_id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
