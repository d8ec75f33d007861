package check_in

import (
	"time"

	"github.com/google/uuid"

	checkIn "github.com/m04kA/SMC-ParkingService/internal/usecase/check_in"
)

// CheckInResponse HTTP response model
type CheckInResponse struct {
	BookingID   uuid.UUID `json:"bookingId"`
	SlotID      uuid.UUID `json:"slotId"`
	CheckInTime string    `json:"checkInTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkIn.Response) *CheckInResponse {
	return &CheckInResponse{
		BookingID:   resp.BookingID,
		SlotID:      resp.SlotID,
		CheckInTime: resp.CheckInTime.Format(time.RFC3339),
	}
}
