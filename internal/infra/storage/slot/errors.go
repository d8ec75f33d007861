package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotNumberTaken возвращается при попытке создать слот с существующим номером
	ErrSlotNumberTaken = errors.New("slot.repository: slot number already exists")

	// ErrSlotOccupied возвращается при удалении слота, за которым закреплено бронирование
	ErrSlotOccupied = errors.New("slot.repository: slot has a current booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
