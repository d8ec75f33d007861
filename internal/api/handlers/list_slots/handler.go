package list_slots

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: location, vehicleType, operational=true (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &models.ListSlotsRequest{
		Location:        handlers.QueryString(q, "location"),
		VehicleType:     handlers.QueryString(q, "vehicleType"),
		OnlyOperational: q.Get("operational") == "true",
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /slots - Failed to list slots: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
