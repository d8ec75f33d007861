package check_out

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request входные данные для отметки об уходе
type Request struct {
	BookingID uuid.UUID
	CallerID  int64
	IsAdmin   bool
}

// Response момент ухода и фактическая длительность стоянки
type Response struct {
	BookingID           uuid.UUID
	SlotID              uuid.UUID
	CheckInTime         time.Time
	CheckOutTime        time.Time
	ActualDurationHours float64
	Status              domain.BookingStatus
}
