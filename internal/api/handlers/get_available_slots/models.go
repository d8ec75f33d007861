package get_available_slots

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	findAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/find_available_slots"
)

// SlotResponse свободный слот
type SlotResponse struct {
	ID              uuid.UUID `json:"id"`
	SlotNumber      string    `json:"slotNumber"`
	Location        string    `json:"location"`
	VehicleType     string    `json:"vehicleType"`
	ReservedFor     string    `json:"reservedFor"`
	HourlyRate      float64   `json:"hourlyRate"`
	IsAvailable     bool      `json:"isAvailable"`
	EstimatedAmount *float64  `json:"estimatedAmount,omitempty"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// ToUseCaseRequest собирает фильтры из query параметров. Значения проверяет use case
func ToUseCaseRequest(q url.Values, role domain.Role) (*findAvailableSlots.Request, error) {
	req := &findAvailableSlots.Request{Role: role}

	if raw := handlers.QueryString(q, "location"); raw != nil {
		location := domain.Location(*raw)
		req.Location = &location
	}
	if raw := handlers.QueryString(q, "vehicleType"); raw != nil {
		vehicleType := domain.VehicleType(*raw)
		req.VehicleType = &vehicleType
	}

	var err error
	if req.StartTime, err = handlers.QueryTime(q, "startTime"); err != nil {
		return nil, err
	}
	if req.EndTime, err = handlers.QueryTime(q, "endTime"); err != nil {
		return nil, err
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findAvailableSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
		Total: resp.Total,
	}
	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			ID:              s.ID,
			SlotNumber:      s.SlotNumber,
			Location:        string(s.Location),
			VehicleType:     string(s.VehicleType),
			ReservedFor:     string(s.ReservedFor),
			HourlyRate:      s.HourlyRate,
			IsAvailable:     s.IsAvailable,
			EstimatedAmount: s.EstimatedAmount,
		})
	}
	return result
}
