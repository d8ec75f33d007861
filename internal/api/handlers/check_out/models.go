package check_out

import (
	"time"

	"github.com/google/uuid"

	checkOut "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
)

// CheckOutResponse HTTP response model
type CheckOutResponse struct {
	BookingID           uuid.UUID `json:"bookingId"`
	SlotID              uuid.UUID `json:"slotId"`
	CheckInTime         string    `json:"checkInTime"`
	CheckOutTime        string    `json:"checkOutTime"`
	ActualDurationHours float64   `json:"actualDurationHours"`
	Status              string    `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkOut.Response) *CheckOutResponse {
	return &CheckOutResponse{
		BookingID:           resp.BookingID,
		SlotID:              resp.SlotID,
		CheckInTime:         resp.CheckInTime.Format(time.RFC3339),
		CheckOutTime:        resp.CheckOutTime.Format(time.RFC3339),
		ActualDurationHours: resp.ActualDurationHours,
		Status:              string(resp.Status),
	}
}
