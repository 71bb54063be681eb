package importer

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/suninet/suninet/internal/platform/httpx"
	"github.com/suninet/suninet/internal/subscribers"
)

// Handler manages the bulk upload endpoint.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers import routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/upload-csv", h.upload)
}

type uploadRequest struct {
	Data []subscribers.ImportRow `json:"data" validate:"required"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid data format")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid data format")
		return
	}

	count, err := h.service.Import(r.Context(), req.Data)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "count": count})
}
