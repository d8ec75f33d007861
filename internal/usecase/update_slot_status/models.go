package update_slot_status

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request изменение состояния слота администратором. nil - поле не меняется
type Request struct {
	SlotID            uuid.UUID
	CallerID          int64
	MaintenanceStatus *domain.MaintenanceStatus
	IsActive          *bool
}

// Response слот после изменения и число отмененных из-за него бронирований
type Response struct {
	Slot              *domain.ParkingSlot
	CancelledBookings int
}
