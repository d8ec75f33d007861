package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	findAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/find_available_slots"
)

const (
	msgInvalidTime = "некорректный формат времени, ожидается RFC3339"
)

type Handler struct {
	useCase FindAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/available
// Query params: location, vehicleType, startTime + endTime (все опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query(), middleware.GetRole(r.Context()))
	if err != nil {
		h.logger.Warn("GET /slots/available - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, findAvailableSlots.ErrStorageUnavailable) {
			h.logger.Error("GET /slots/available - Failed to find slots: %v", err)
		} else {
			h.logger.Warn("GET /slots/available - Rejected: %v", err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /slots/available - Slots found: count=%d, role=%s", result.Total, useCaseReq.Role)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
