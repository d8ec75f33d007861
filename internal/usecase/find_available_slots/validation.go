package find_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if !req.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}
	if req.Location != nil && !req.Location.IsValid() {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, *req.Location)
	}
	if req.VehicleType != nil && !req.VehicleType.IsValidForBooking() {
		return fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, *req.VehicleType)
	}
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return fmt.Errorf("%w: start and end time must be set together", ErrInvalidInput)
	}
	if req.StartTime != nil && !req.EndTime.After(*req.StartTime) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidWindow,
			req.StartTime.Format(domain.DateTimeFormat), req.EndTime.Format(domain.DateTimeFormat))
	}
	return nil
}

// suitable проверяет, что слот включен, работает и подходит роли
func suitable(slot *domain.ParkingSlot, role domain.Role) bool {
	return slot.IsActive && slot.IsOperational() && role.CanUse(slot.ReservedFor)
}
