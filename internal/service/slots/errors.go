package slots

import "github.com/m04kA/SMC-ParkingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных данных слота
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrNotFound возвращается, когда слот не найден
	ErrNotFound = domain.ErrNotFound

	// ErrSlotOccupied возвращается при удалении слота, за которым закреплено бронирование
	ErrSlotOccupied = domain.ErrSlotOccupied

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = domain.ErrStorageUnavailable
)
