package sweep_expired

import "github.com/m04kA/SMC-ParkingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректной политике закрытия
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrStorageUnavailable возвращается, когда не удалось получить просроченные бронирования
	ErrStorageUnavailable = domain.ErrStorageUnavailable
)
