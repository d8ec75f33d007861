package allocation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
)

func TestReconcile_ClaimsEarliestActiveBooking(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	slot, err := store.Slots().Create(ctx, &domain.ParkingSlot{
		SlotNumber:        "P001",
		IsActive:          true,
		MaintenanceStatus: domain.MaintenanceOperational,
	})
	require.NoError(t, err)

	svc := NewService(store.Bookings(), store.Slots())
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	later, err := store.Bookings().Create(ctx, &domain.Booking{
		SlotID: slot.ID, Status: domain.StatusActive, StartTime: base.Add(3 * time.Hour), EndTime: base.Add(4 * time.Hour),
	})
	require.NoError(t, err)
	earlier, err := store.Bookings().Create(ctx, &domain.Booking{
		SlotID: slot.ID, Status: domain.StatusActive, StartTime: base, EndTime: base.Add(time.Hour),
	})
	require.NoError(t, err)

	holder, err := svc.Reconcile(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, earlier.ID, *holder)

	// Раннее бронирование завершилось - слот переходит к следующему
	earlier.Status = domain.StatusCompleted
	require.NoError(t, store.Bookings().Update(ctx, earlier))

	holder, err = svc.Reconcile(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, later.ID, *holder)

	later.Status = domain.StatusCancelled
	require.NoError(t, store.Bookings().Update(ctx, later))

	holder, err = svc.Reconcile(ctx, slot.ID)
	require.NoError(t, err)
	assert.Nil(t, holder)

	current, err := store.Slots().GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Nil(t, current.CurrentBookingID)
	assert.True(t, current.IsAvailable)
}

func TestLockBooking_ReturnsFreshBookingAndSlot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	txManager := memory.NewTxManager(store, time.Second)
	svc := NewService(store.Bookings(), store.Slots())

	slot, err := store.Slots().Create(ctx, &domain.ParkingSlot{
		SlotNumber:        "P001",
		IsActive:          true,
		MaintenanceStatus: domain.MaintenanceOperational,
	})
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	created, err := store.Bookings().Create(ctx, &domain.Booking{
		SlotID: slot.ID, Status: domain.StatusActive, StartTime: base, EndTime: base.Add(time.Hour),
	})
	require.NoError(t, err)

	err = txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, lockedSlot, err := svc.LockBooking(txCtx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, booking.ID)
		assert.Equal(t, slot.ID, lockedSlot.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestLockBooking_NotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Bookings(), store.Slots())

	_, _, err := svc.LockBooking(context.Background(), uuid.New())
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}
