package check_in

import "github.com/m04kA/SMC-ParkingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = domain.ErrNotFound

	// ErrUnauthorized возвращается, когда отмечается не владелец и не администратор
	ErrUnauthorized = domain.ErrUnauthorized

	// ErrNotActive возвращается, когда бронирование не активно
	ErrNotActive = domain.ErrNotActive

	// ErrAlreadyCheckedIn возвращается при повторной отметке о прибытии
	ErrAlreadyCheckedIn = domain.ErrAlreadyCheckedIn

	// ErrTooEarly возвращается, когда до начала брони больше допустимого запаса
	ErrTooEarly = domain.ErrTooEarly

	// ErrWindowExpired возвращается, когда окно брони уже закончилось
	ErrWindowExpired = domain.ErrWindowExpired

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = domain.ErrStorageUnavailable
)
