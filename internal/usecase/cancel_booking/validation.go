package cancel_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

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
	if utf8.RuneCountInString(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

// checkCancellable проверяет предусловия отмены по порядку: статус, права, окно отмены.
// Администратор может отменить активную бронь в любой момент
func checkCancellable(booking *domain.Booking, req *Request, now time.Time, cutoff time.Duration) error {
	if !booking.IsActive() {
		return fmt.Errorf("%w: booking %s is %s", ErrNotActive, booking.ID, booking.Status)
	}
	if booking.UserID != req.CallerID && !req.IsAdmin {
		return fmt.Errorf("%w: user %d does not own booking %s", ErrUnauthorized, req.CallerID, booking.ID)
	}
	if !req.IsAdmin && !now.Before(booking.StartTime.Add(-cutoff)) {
		return fmt.Errorf("%w: booking %s starts at %s", ErrCancellationWindowClosed,
			booking.ID, booking.StartTime.Format(domain.DateTimeFormat))
	}
	return nil
}

// cancellationReason возвращает причину отмены: переданную или причину по умолчанию
func cancellationReason(req *Request) string {
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		return reason
	}
	if req.IsAdmin {
		return domain.ReasonCancelledByAdmin
	}
	return domain.ReasonCancelledByUser
}
