package extend_booking

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

// checkExtendable проверяет предусловия продления по порядку:
// права, активность брони и текущий момент внутри окна [start, end], число часов
func checkExtendable(booking *domain.Booking, req *Request, now time.Time, policy domain.BookingPolicy) error {
	if booking.UserID != req.CallerID && !req.IsAdmin {
		return fmt.Errorf("%w: user %d does not own booking %s", ErrUnauthorized, req.CallerID, booking.ID)
	}
	if !booking.IsActive() {
		return fmt.Errorf("%w: booking %s is %s", ErrNotExtendable, booking.ID, booking.Status)
	}
	if now.Before(booking.StartTime) || now.After(booking.EndTime) {
		return fmt.Errorf("%w: booking %s can be extended only between %s and %s", ErrNotExtendable, booking.ID,
			booking.StartTime.Format(domain.DateTimeFormat), booking.EndTime.Format(domain.DateTimeFormat))
	}
	if req.AdditionalHours < policy.MinExtensionHours || req.AdditionalHours > policy.MaxExtensionHours {
		return fmt.Errorf("%w: %d hours, allowed %d..%d", ErrInvalidExtension,
			req.AdditionalHours, policy.MinExtensionHours, policy.MaxExtensionHours)
	}
	return nil
}
