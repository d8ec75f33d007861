package cancel_booking

import (
	"time"

	"github.com/google/uuid"

	cancelBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model; тело необязательно
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             int64     `json:"userId"`
	SlotID             uuid.UUID `json:"slotId"`
	StartTime          string    `json:"startTime"`
	EndTime            string    `json:"endTime"`
	Status             string    `json:"status"`
	CancellationReason string    `json:"cancellationReason"`
	CancelledAt        string    `json:"cancelledAt"`
	CancelledBy        int64     `json:"cancelledBy"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID uuid.UUID, callerID int64, isAdmin bool) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID: bookingID,
		CallerID:  callerID,
		IsAdmin:   isAdmin,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:                 resp.ID,
		UserID:             resp.UserID,
		SlotID:             resp.SlotID,
		StartTime:          resp.StartTime.Format(time.RFC3339),
		EndTime:            resp.EndTime.Format(time.RFC3339),
		Status:             string(resp.Status),
		CancellationReason: resp.CancellationReason,
		CancelledAt:        resp.CancelledAt.Format(time.RFC3339),
		CancelledBy:        resp.CancelledBy,
	}
}
