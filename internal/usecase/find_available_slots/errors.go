// Package find_available_slots ищет свободные слоты. Отсутствие подходящих слотов - пустой
// список, а не ошибка. Ошибки ниже отклоняют сам запрос на уровне адаптера (фильтры,
// полуоткрытое окно) или сообщают, что хранилище не ответило после повторов
package find_available_slots

import "github.com/m04kA/SMC-ParkingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных фильтрах
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInvalidWindow возвращается, когда конец окна не позже начала
	ErrInvalidWindow = domain.ErrInvalidWindow

	// ErrStorageUnavailable возвращается, когда чтение не удалось после всех попыток
	ErrStorageUnavailable = domain.ErrStorageUnavailable
)
