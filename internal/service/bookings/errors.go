package bookings

import "github.com/m04kA/SMC-ParkingService/internal/domain"

var (
	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = domain.ErrNotFound

	// ErrUnauthorized возвращается, когда у пользователя нет прав доступа
	ErrUnauthorized = domain.ErrUnauthorized

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = domain.ErrStorageUnavailable
)
