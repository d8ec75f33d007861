package extend_booking

import (
	"time"

	"github.com/google/uuid"

	extendBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/extend_booking"
)

// ExtendBookingRequest HTTP request model
type ExtendBookingRequest struct {
	AdditionalHours int `json:"additionalHours"`
}

// ExtendBookingResponse HTTP response model
type ExtendBookingResponse struct {
	ID             uuid.UUID `json:"id"`
	SlotID         uuid.UUID `json:"slotId"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	DurationHours  int       `json:"durationHours"`
	TotalAmount    float64   `json:"totalAmount"`
	Status         string    `json:"status"`
	AddedHours     int       `json:"addedHours"`
	AddedAmount    float64   `json:"addedAmount"`
	ExtensionCount int       `json:"extensionCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *extendBooking.Response) *ExtendBookingResponse {
	return &ExtendBookingResponse{
		ID:             resp.ID,
		SlotID:         resp.SlotID,
		StartTime:      resp.StartTime.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		DurationHours:  resp.DurationHours,
		TotalAmount:    resp.TotalAmount,
		Status:         string(resp.Status),
		AddedHours:     resp.Extension.AddedHours,
		AddedAmount:    resp.Extension.AddedAmount,
		ExtensionCount: resp.ExtensionCount,
	}
}
