package check_out

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	checkOut "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
)

type Handler struct {
	useCase CheckOutUseCase
	logger  Logger
}

func NewHandler(useCase CheckOutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/checkout - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthenticated(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkOut.Request{
		BookingID: bookingID,
		CallerID:  userID,
		IsAdmin:   middleware.IsAdmin(r.Context()),
	})
	if err != nil {
		if errors.Is(err, checkOut.ErrStorageUnavailable) {
			h.logger.Error("PATCH /bookings/{id}/checkout - Failed to check out: booking_id=%s, error=%v", bookingID, err)
		} else {
			h.logger.Warn("PATCH /bookings/{id}/checkout - Rejected: booking_id=%s, reason=%v", bookingID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/checkout - Checked out: booking_id=%s, actual_hours=%.2f",
		bookingID, result.ActualDurationHours)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
