package check_in

import (
	"time"

	"github.com/google/uuid"
)

// Request входные данные для отметки о прибытии
type Request struct {
	BookingID uuid.UUID
	CallerID  int64
	IsAdmin   bool
}

// Response момент прибытия
type Response struct {
	BookingID   uuid.UUID
	SlotID      uuid.UUID
	CheckInTime time.Time
}
