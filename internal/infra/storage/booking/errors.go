package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBookingOverlap возвращается, когда БД отклонила пересекающееся активное бронирование слота
	ErrBookingOverlap = errors.New("booking.repository: overlapping active booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncodeHistory возвращается при ошибке сериализации истории продлений
	ErrEncodeHistory = errors.New("booking.repository: failed to encode extension history")
)
