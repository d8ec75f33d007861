package find_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.ParkingSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBusySlotIDs возвращает слоты, у которых есть активная бронь, пересекающая [start, end)
	GetBusySlotIDs(ctx context.Context, start, end time.Time) ([]uuid.UUID, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
