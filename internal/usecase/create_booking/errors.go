package create_booking

import "github.com/m04kA/SMC-ParkingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInvalidWindow возвращается, когда конец брони не позже начала
	ErrInvalidWindow = domain.ErrInvalidWindow

	// ErrWindowInPast возвращается при попытке забронировать прошедшее время
	ErrWindowInPast = domain.ErrWindowInPast

	// ErrTooFarInAdvance возвращается, когда начало дальше допустимого горизонта бронирования
	ErrTooFarInAdvance = domain.ErrTooFarInAdvance

	// ErrDurationTooLong возвращается, когда бронь длиннее допустимого
	ErrDurationTooLong = domain.ErrDurationTooLong

	// ErrSlotUnsuitable возвращается, когда слот не существует, выключен, на обслуживании
	// или не подходит по типу транспорта либо роли пользователя
	ErrSlotUnsuitable = domain.ErrSlotUnsuitable

	// ErrLocationMismatch возвращается, когда слот находится в другой локации
	ErrLocationMismatch = domain.ErrLocationMismatch

	// ErrSlotConflict возвращается, когда окно пересекается с активным бронированием слота
	ErrSlotConflict = domain.ErrSlotConflict

	// ErrTooManyActiveBookings возвращается при превышении лимита активных бронирований пользователя
	ErrTooManyActiveBookings = domain.ErrTooManyActiveBookings

	// ErrVehicleNotRegistered возвращается, когда автомобиль не зарегистрирован на пользователя
	ErrVehicleNotRegistered = domain.ErrVehicleNotRegistered

	// ErrStorageUnavailable возвращается при недоступности хранилища или справочника пользователей
	ErrStorageUnavailable = domain.ErrStorageUnavailable
)
