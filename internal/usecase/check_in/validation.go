package check_in

import (
	"fmt"
	"time"

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

// checkArrival проверяет, что отметиться можно: отметка разрешена за grace до начала и до конца окна включительно
func checkArrival(booking *domain.Booking, req *Request, now time.Time, grace time.Duration) error {
	if booking.UserID != req.CallerID && !req.IsAdmin {
		return fmt.Errorf("%w: user %d does not own booking %s", ErrUnauthorized, req.CallerID, booking.ID)
	}
	if !booking.IsActive() {
		return fmt.Errorf("%w: booking %s is %s", ErrNotActive, booking.ID, booking.Status)
	}
	if booking.IsCheckedIn() {
		return fmt.Errorf("%w: at %s", ErrAlreadyCheckedIn, booking.CheckInTime.Format(domain.DateTimeFormat))
	}
	if now.Before(booking.StartTime.Add(-grace)) {
		return fmt.Errorf("%w: check-in opens at %s", ErrTooEarly,
			booking.StartTime.Add(-grace).Format(domain.DateTimeFormat))
	}
	if now.After(booking.EndTime) {
		return fmt.Errorf("%w: booking ended at %s", ErrWindowExpired, booking.EndTime.Format(domain.DateTimeFormat))
	}
	return nil
}
