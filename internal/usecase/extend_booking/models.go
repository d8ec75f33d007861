package extend_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request входные данные для продления бронирования
type Request struct {
	BookingID       uuid.UUID
	CallerID        int64
	IsAdmin         bool
	AdditionalHours int
}

// Response продленное бронирование
type Response struct {
	ID             uuid.UUID
	UserID         int64
	SlotID         uuid.UUID
	StartTime      time.Time
	EndTime        time.Time
	DurationHours  int
	TotalAmount    float64
	Status         domain.BookingStatus
	Extension      domain.Extension
	ExtensionCount int
}
