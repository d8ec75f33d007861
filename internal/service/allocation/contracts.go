package allocation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetActiveBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов. Claim и Release - единственные операции,
// меняющие закрепление слота
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error)
	Claim(ctx context.Context, slotID, bookingID uuid.UUID) error
	Release(ctx context.Context, slotID uuid.UUID) error
}
