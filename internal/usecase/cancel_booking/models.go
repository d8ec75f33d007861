package cancel_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request входные данные для отмены бронирования
type Request struct {
	BookingID uuid.UUID
	CallerID  int64
	IsAdmin   bool
	Reason    string // пусто - причина по умолчанию
}

// Response отмененное бронирование
type Response struct {
	ID                 uuid.UUID
	UserID             int64
	SlotID             uuid.UUID
	StartTime          time.Time
	EndTime            time.Time
	Status             domain.BookingStatus
	CancellationReason string
	CancelledAt        time.Time
	CancelledBy        int64
}
