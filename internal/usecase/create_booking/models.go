package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request входные данные для создания бронирования
type Request struct {
	UserID        int64
	SlotID        uuid.UUID
	VehicleNumber string
	VehicleType   domain.VehicleType
	Location      domain.Location
	StartTime     time.Time
	EndTime       time.Time
}

// Response результат создания бронирования
type Response struct {
	ID            uuid.UUID
	UserID        int64
	SlotID        uuid.UUID
	SlotNumber    string
	Location      domain.Location
	VehicleNumber string
	VehicleType   domain.VehicleType
	StartTime     time.Time
	EndTime       time.Time
	DurationHours int
	HourlyRate    float64
	TotalAmount   float64
	Status        domain.BookingStatus
	CreatedAt     time.Time
}
