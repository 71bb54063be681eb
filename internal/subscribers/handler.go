package subscribers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/suninet/suninet/internal/platform/httpx"
)

// Handler manages subscriber ledger endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	now     func() time.Time
}

// NewHandler builds a Handler instance. The clock supplies the default
// reference date when a request carries no as_of parameter; the engine
// itself never reads wall time.
func NewHandler(logger *slog.Logger, service *Service, now func() time.Time) *Handler {
	return &Handler{logger: logger, service: service, now: now}
}

// MountRoutes registers subscriber routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid customer id")
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToDTO(*c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	asOf := AsOfParam(r, h.now)

	customers, err := h.service.List(r.Context(), asOf)
	if err != nil {
		h.logger.Error("list customers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	out := make([]CustomerWithPaymentDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, ToPaymentDTO(c))
	}
	httpx.JSON(w, http.StatusOK, out)
}

type updateRequest struct {
	FullName     *string `json:"full_name"`
	Area         *string `json:"area"`
	Address      *string `json:"address"`
	MobileNumber *string `json:"mobile_number"`
	CustomPrice  *int    `json:"custom_price"`
	ExpiryDate   *string `json:"expiry_date"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid customer id")
		return
	}

	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed body")
		return
	}

	fields := UpdateFields{
		FullName:     req.FullName,
		Area:         req.Area,
		Address:      req.Address,
		MobileNumber: req.MobileNumber,
		CustomPrice:  req.CustomPrice,
	}
	if req.ExpiryDate != nil {
		t := ParseDate(*req.ExpiryDate)
		fields.ExpiryDate = &t
	}

	if err := h.service.Update(r.Context(), id, fields); err != nil {
		h.logger.Error("update customer", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AsOfParam reads the as_of query parameter, defaulting to the clock.
func AsOfParam(r *http.Request, now func() time.Time) time.Time {
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		if t, err := time.Parse(dateLayout, raw); err == nil {
			return t
		}
	}
	return now()
}
