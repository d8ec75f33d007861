package sweep_expired

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ValidateUnattendedStatus проверяет статус для брони без отметки о прибытии
func ValidateUnattendedStatus(status domain.BookingStatus) error {
	if status != domain.StatusNoShow && status != domain.StatusExpired {
		return fmt.Errorf("%w: unattended bookings can become %q or %q, got %q",
			ErrInvalidInput, domain.StatusNoShow, domain.StatusExpired, status)
	}
	return nil
}

// closingStatus выбирает итоговый статус просроченной брони
func closingStatus(booking *domain.Booking, unattended domain.BookingStatus) domain.BookingStatus {
	if !booking.IsCheckedIn() {
		return unattended
	}
	return domain.StatusExpired
}

// isOverdue повторяет условие выборки под блокировкой: бронь могли закрыть после выборки
func isOverdue(booking *domain.Booking, req *Request) bool {
	return booking.IsActive() && !booking.EndTime.After(req.Now) && !booking.IsCheckedOut()
}
