package update_slot_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	updateSlotStatus "github.com/m04kA/SMC-ParkingService/internal/usecase/update_slot_status"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase UpdateSlotStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateSlotStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/status (только администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathUUID(r, "slotId")
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/status - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthenticated(w, msgMissingUserID)
		return
	}

	var req UpdateSlotStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID, userID))
	if err != nil {
		if errors.Is(err, updateSlotStatus.ErrStorageUnavailable) {
			h.logger.Error("PATCH /slots/{id}/status - Failed to update slot: slot_id=%s, error=%v", slotID, err)
		} else {
			h.logger.Warn("PATCH /slots/{id}/status - Rejected: slot_id=%s, reason=%v", slotID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /slots/{id}/status - Slot updated: slot_id=%s, cancelled_bookings=%d",
		slotID, result.CancelledBookings)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
