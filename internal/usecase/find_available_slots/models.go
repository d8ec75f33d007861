package find_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request фильтры поиска свободных слотов. Окно задается целиком или не задается вовсе
type Request struct {
	Role        domain.Role
	Location    *domain.Location
	VehicleType *domain.VehicleType
	StartTime   *time.Time
	EndTime     *time.Time
}

// Slot свободный слот
type Slot struct {
	ID          uuid.UUID
	SlotNumber  string
	Location    domain.Location
	VehicleType domain.VehicleType
	ReservedFor domain.ReservedFor
	HourlyRate  float64
	IsAvailable bool
	// EstimatedAmount стоимость запрошенного окна, если окно задано
	EstimatedAmount *float64
}

// Response результат поиска, слоты отсортированы по номеру
type Response struct {
	Slots []Slot
	Total int
}
