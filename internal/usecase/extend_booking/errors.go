package extend_booking

import "github.com/m04kA/SMC-ParkingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = domain.ErrNotFound

	// ErrUnauthorized возвращается, когда продлевает не владелец и не администратор
	ErrUnauthorized = domain.ErrUnauthorized

	// ErrNotExtendable возвращается, когда бронь не активна или сейчас вне ее окна
	ErrNotExtendable = domain.ErrNotExtendable

	// ErrInvalidExtension возвращается, когда число часов продления вне допустимого диапазона
	ErrInvalidExtension = domain.ErrInvalidExtension

	// ErrExtensionConflict возвращается, когда продление пересекается со следующей бронью слота
	ErrExtensionConflict = domain.ErrExtensionConflict

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = domain.ErrStorageUnavailable
)
