package check_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	checkIn "github.com/m04kA/SMC-ParkingService/internal/usecase/check_in"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
)

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/checkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/checkin - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthenticated(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkIn.Request{
		BookingID: bookingID,
		CallerID:  userID,
		IsAdmin:   middleware.IsAdmin(r.Context()),
	})
	if err != nil {
		if errors.Is(err, checkIn.ErrStorageUnavailable) {
			h.logger.Error("PATCH /bookings/{id}/checkin - Failed to check in: booking_id=%s, error=%v", bookingID, err)
		} else {
			h.logger.Warn("PATCH /bookings/{id}/checkin - Rejected: booking_id=%s, reason=%v", bookingID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/checkin - Checked in: booking_id=%s, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
