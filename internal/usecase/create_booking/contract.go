package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindActiveOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Booking, error)
	CountActiveByUser(ctx context.Context, userID int64, moment time.Time) (int, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error)
}

// Allocator согласует закрепление слота с его активными бронированиями
type Allocator interface {
	Reconcile(ctx context.Context, slotID uuid.UUID) (*uuid.UUID, error)
}

// UserDirectory справочник пользователей: роль и зарегистрированные автомобили
type UserDirectory interface {
	GetRole(ctx context.Context, userID int64) (domain.Role, error)
	GetRegisteredVehicles(ctx context.Context, userID int64) ([]domain.Vehicle, error)
}

// EventNotifier получатель событий о закоммиченных переходах, ошибки доставки не возвращаются
type EventNotifier interface {
	Notify(ctx context.Context, event domain.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
