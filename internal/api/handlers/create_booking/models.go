package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID        string `json:"slotId"`
	VehicleNumber string `json:"vehicleNumber"`
	VehicleType   string `json:"vehicleType"`
	Location      string `json:"location"`
	StartTime     string `json:"startTime"` // RFC3339
	EndTime       string `json:"endTime"`   // RFC3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        int64     `json:"userId"`
	SlotID        uuid.UUID `json:"slotId"`
	SlotNumber    string    `json:"slotNumber"`
	Location      string    `json:"location"`
	VehicleNumber string    `json:"vehicleNumber"`
	VehicleType   string    `json:"vehicleType"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	DurationHours int       `json:"durationHours"`
	HourlyRate    float64   `json:"hourlyRate"`
	TotalAmount   float64   `json:"totalAmount"`
	Status        string    `json:"status"`
	CreatedAt     string    `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	slotID, err := uuid.Parse(r.SlotID)
	if err != nil {
		return nil, fmt.Errorf("slotId: %w", err)
	}

	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createBooking.Request{
		UserID:        userID,
		SlotID:        slotID,
		VehicleNumber: r.VehicleNumber,
		VehicleType:   domain.VehicleType(strings.ToLower(r.VehicleType)),
		Location:      domain.Location(r.Location),
		StartTime:     start,
		EndTime:       end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		SlotID:        resp.SlotID,
		SlotNumber:    resp.SlotNumber,
		Location:      string(resp.Location),
		VehicleNumber: resp.VehicleNumber,
		VehicleType:   string(resp.VehicleType),
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		DurationHours: resp.DurationHours,
		HourlyRate:    resp.HourlyRate,
		TotalAmount:   resp.TotalAmount,
		Status:        string(resp.Status),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
