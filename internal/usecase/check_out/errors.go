package check_out

import "github.com/m04kA/SMC-ParkingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = domain.ErrNotFound

	// ErrUnauthorized возвращается, когда отмечается не владелец и не администратор
	ErrUnauthorized = domain.ErrUnauthorized

	// ErrNotCheckedIn возвращается, когда прибытие не было отмечено
	ErrNotCheckedIn = domain.ErrNotCheckedIn

	// ErrAlreadyCheckedOut возвращается при повторной отметке об уходе
	ErrAlreadyCheckedOut = domain.ErrAlreadyCheckedOut

	// ErrNotActive возвращается, когда бронь закрыта другим способом, например отменена администратором
	ErrNotActive = domain.ErrNotActive

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = domain.ErrStorageUnavailable
)
