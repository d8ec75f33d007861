package check_out

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if req.CallerID <= 0 {
		return fmt.Errorf("%w: caller id must be positive", ErrInvalidInput)
	}
	return nil
}

// checkDeparture проверяет предусловия ухода по порядку: права, прибытие, повторный уход, активность
func checkDeparture(booking *domain.Booking, req *Request) error {
	if booking.UserID != req.CallerID && !req.IsAdmin {
		return fmt.Errorf("%w: user %d does not own booking %s", ErrUnauthorized, req.CallerID, booking.ID)
	}
	if !booking.IsCheckedIn() {
		return fmt.Errorf("%w: booking %s", ErrNotCheckedIn, booking.ID)
	}
	if booking.IsCheckedOut() {
		return fmt.Errorf("%w: at %s", ErrAlreadyCheckedOut, booking.CheckOutTime.Format(domain.DateTimeFormat))
	}
	if !booking.IsActive() {
		return fmt.Errorf("%w: booking %s is %s", ErrNotActive, booking.ID, booking.Status)
	}
	return nil
}
