package extend_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	extendBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/extend_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase ExtendBookingUseCase
	logger  Logger
}

func NewHandler(useCase ExtendBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/extend - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthenticated(w, msgMissingUserID)
		return
	}

	var req ExtendBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &extendBooking.Request{
		BookingID:       bookingID,
		CallerID:        userID,
		IsAdmin:         middleware.IsAdmin(r.Context()),
		AdditionalHours: req.AdditionalHours,
	})
	if err != nil {
		if errors.Is(err, extendBooking.ErrStorageUnavailable) {
			h.logger.Error("PATCH /bookings/{id}/extend - Failed to extend booking: booking_id=%s, error=%v", bookingID, err)
		} else {
			h.logger.Warn("PATCH /bookings/{id}/extend - Rejected: booking_id=%s, hours=%d, reason=%v",
				bookingID, req.AdditionalHours, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/extend - Booking extended: booking_id=%s, new_end=%s",
		bookingID, result.EndTime.Format("15:04"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
