package sweep_expired

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// Allocator блокирует слот бронирования и согласует его закрепление
type Allocator interface {
	LockBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, *domain.ParkingSlot, error)
	Reconcile(ctx context.Context, slotID uuid.UUID) (*uuid.UUID, error)
}

// EventNotifier получатель событий о закоммиченных переходах
type EventNotifier interface {
	Notify(ctx context.Context, event domain.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
