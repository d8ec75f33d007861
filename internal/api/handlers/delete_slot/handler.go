package delete_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots"
)

const msgInvalidSlotID = "некорректный ID слота"

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

// Handle DELETE /api/v1/admin/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathUUID(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /admin/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Delete(r.Context(), slotID); err != nil {
		if errors.Is(err, slots.ErrStorageUnavailable) {
			h.logger.Error("DELETE /admin/slots/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
		} else {
			h.logger.Warn("DELETE /admin/slots/{id} - Rejected: slot_id=%s, reason=%v", slotID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /admin/slots/{id} - Slot deleted: slot_id=%s", slotID)
	w.WriteHeader(http.StatusNoContent)
}
