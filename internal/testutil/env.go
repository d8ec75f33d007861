package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/allocation"
)

// Env набор зависимостей use case поверх хранилища в памяти
type Env struct {
	Store     *memory.Store
	TxManager *memory.TxManager
	Allocator *allocation.Service
	Clock     *Clock
	Directory *Directory
	Notifier  *Notifier
	Logger    Logger

	slotSeq int
}

// NewEnv создает окружение с пустым хранилищем и часами, остановленными на now
func NewEnv(t *testing.T, now time.Time) *Env {
	t.Helper()

	store := memory.NewStore()
	return &Env{
		Store:     store,
		TxManager: memory.NewTxManager(store, 2*time.Second),
		Allocator: allocation.NewService(store.Bookings(), store.Slots()),
		Clock:     NewClock(now),
		Directory: NewDirectory(),
		Notifier:  &Notifier{},
	}
}

// AddSlot создает рабочий слот общего назначения для автомобилей в Building A по 5.00 в час.
// mutate позволяет поменять поля до сохранения
func (e *Env) AddSlot(t *testing.T, mutate func(*domain.ParkingSlot)) *domain.ParkingSlot {
	t.Helper()

	e.slotSeq++
	slot := &domain.ParkingSlot{
		SlotNumber:        fmt.Sprintf("P%03d", e.slotSeq),
		Location:          domain.LocationBuildingA,
		VehicleType:       domain.VehicleCar,
		ReservedFor:       domain.ReservedGeneral,
		HourlyRate:        domain.DefaultHourlyRate,
		IsActive:          true,
		MaintenanceStatus: domain.MaintenanceOperational,
	}
	if mutate != nil {
		mutate(slot)
	}

	created, err := e.Store.Slots().Create(context.Background(), slot)
	require.NoError(t, err)
	return created
}

// SeedBooking сохраняет активное бронирование в обход use case и согласует слот
func (e *Env) SeedBooking(t *testing.T, slot *domain.ParkingSlot, userID int64, start, end time.Time) *domain.Booking {
	t.Helper()

	var result *domain.Booking
	err := e.TxManager.DoSerializable(context.Background(), func(ctx context.Context) error {
		if _, err := e.Store.Slots().GetByIDForUpdate(ctx, slot.ID); err != nil {
			return err
		}

		hours := domain.BillableHours(start, end)
		created, err := e.Store.Bookings().Create(ctx, &domain.Booking{
			UserID:        userID,
			SlotID:        slot.ID,
			Vehicle:       domain.Vehicle{Number: fmt.Sprintf("SEED%d", userID), Type: domain.VehicleCar},
			Location:      slot.Location,
			StartTime:     start,
			EndTime:       end,
			DurationHours: hours,
			Status:        domain.StatusActive,
			TotalAmount:   domain.Amount(hours, slot.HourlyRate),
		})
		if err != nil {
			return err
		}
		result = created

		_, err = e.Allocator.Reconcile(ctx, slot.ID)
		return err
	})
	require.NoError(t, err)
	return result
}

// Booking читает бронирование из хранилища
func (e *Env) Booking(t *testing.T, id uuid.UUID) *domain.Booking {
	t.Helper()

	b, err := e.Store.Bookings().GetByID(context.Background(), id)
	require.NoError(t, err)
	return b
}

// Slot читает слот из хранилища
func (e *Env) Slot(t *testing.T, id uuid.UUID) *domain.ParkingSlot {
	t.Helper()

	s, err := e.Store.Slots().GetByID(context.Background(), id)
	require.NoError(t, err)
	return s
}

// AssertSlotInvariants проверяет для каждого слота:
// активные бронирования не пересекаются, слот закреплен за самым ранним из них (или свободен),
// флаг доступности согласован с закреплением и рабочим состоянием
func AssertSlotInvariants(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()

	slots, err := store.Slots().List(ctx, domain.SlotFilter{})
	require.NoError(t, err)

	for _, slot := range slots {
		active, err := store.Bookings().GetActiveBySlot(ctx, slot.ID)
		require.NoError(t, err)

		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				assert.False(t, active[i].Overlaps(active[j].StartTime, active[j].EndTime),
					"slot %s has overlapping active bookings %s and %s", slot.SlotNumber, active[i].ID, active[j].ID)
			}
		}

		if len(active) == 0 {
			assert.Nil(t, slot.CurrentBookingID, "slot %s is claimed without active bookings", slot.SlotNumber)
		} else if assert.NotNil(t, slot.CurrentBookingID, "slot %s has active bookings but is not claimed", slot.SlotNumber) {
			assert.Equal(t, active[0].ID, *slot.CurrentBookingID, "slot %s is not held by its earliest active booking", slot.SlotNumber)
		}

		assert.Equal(t, slot.ComputeAvailability(), slot.IsAvailable, "slot %s availability flag is stale", slot.SlotNumber)
	}
}
