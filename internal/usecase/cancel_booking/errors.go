package cancel_booking

import "github.com/m04kA/SMC-ParkingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = domain.ErrNotFound

	// ErrNotActive возвращается, когда бронирование уже не активно
	ErrNotActive = domain.ErrNotActive

	// ErrUnauthorized возвращается, когда отменяет не владелец и не администратор
	ErrUnauthorized = domain.ErrUnauthorized

	// ErrCancellationWindowClosed возвращается, когда до начала брони осталось меньше часа
	ErrCancellationWindowClosed = domain.ErrCancellationWindowClosed

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = domain.ErrStorageUnavailable
)
