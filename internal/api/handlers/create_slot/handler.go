package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/admin/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, slots.ErrStorageUnavailable) {
			h.logger.Error("POST /admin/slots - Failed to create slot: %v", err)
		} else {
			h.logger.Warn("POST /admin/slots - Rejected: %v", err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /admin/slots - Slot created: slot_id=%s, number=%s", slot.ID, slot.SlotNumber)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
