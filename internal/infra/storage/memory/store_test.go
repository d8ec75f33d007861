package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

func setupStore(t *testing.T) (*Store, *domain.ParkingSlot) {
	t.Helper()

	store := NewStore()
	slot, err := store.Slots().Create(context.Background(), &domain.ParkingSlot{
		SlotNumber:        "P001",
		Location:          domain.LocationBuildingA,
		VehicleType:       domain.VehicleCar,
		ReservedFor:       domain.ReservedGeneral,
		HourlyRate:        5,
		IsActive:          true,
		MaintenanceStatus: domain.MaintenanceOperational,
	})
	require.NoError(t, err)

	return store, slot
}

func newBooking(slotID uuid.UUID, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		UserID:    1,
		SlotID:    slotID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusActive,
	}
}

func TestSlotRepository_CreateRejectsDuplicateNumber(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Slots().Create(context.Background(), &domain.ParkingSlot{SlotNumber: "P001"})
	assert.ErrorIs(t, err, slotRepo.ErrSlotNumberTaken)
}

func TestSlotRepository_ClaimRelease(t *testing.T) {
	store, slot := setupStore(t)
	ctx := context.Background()
	assert.True(t, slot.IsAvailable)

	bookingID := uuid.New()
	require.NoError(t, store.Slots().Claim(ctx, slot.ID, bookingID))

	claimed, err := store.Slots().GetByID(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, claimed.CurrentBookingID)
	assert.Equal(t, bookingID, *claimed.CurrentBookingID)
	assert.False(t, claimed.IsAvailable)

	require.NoError(t, store.Slots().Release(ctx, slot.ID))
	released, err := store.Slots().GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Nil(t, released.CurrentBookingID)
	assert.True(t, released.IsAvailable)
}

func TestSlotRepository_DeleteRefusedWhileClaimed(t *testing.T) {
	store, slot := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Slots().Claim(ctx, slot.ID, uuid.New()))
	assert.ErrorIs(t, store.Slots().Delete(ctx, slot.ID), slotRepo.ErrSlotOccupied)

	require.NoError(t, store.Slots().Release(ctx, slot.ID))
	require.NoError(t, store.Slots().Delete(ctx, slot.ID))

	_, err := store.Slots().GetByID(ctx, slot.ID)
	assert.ErrorIs(t, err, slotRepo.ErrSlotNotFound)
}

func TestTxManager_RollbackDiscardsStagedWrites(t *testing.T) {
	store, slot := setupStore(t)
	txManager := NewTxManager(store, 0)
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	failure := errors.New("abort")
	var createdID uuid.UUID
	err := txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := store.Bookings().Create(txCtx, newBooking(slot.ID, base, base.Add(time.Hour)))
		require.NoError(t, err)
		createdID = created.ID
		require.NoError(t, store.Slots().Claim(txCtx, slot.ID, created.ID))

		// Внутри транзакции изменения видны
		_, err = store.Bookings().GetByID(txCtx, created.ID)
		require.NoError(t, err)
		return failure
	})
	assert.ErrorIs(t, err, failure)

	_, err = store.Bookings().GetByID(ctx, createdID)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)

	current, err := store.Slots().GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Nil(t, current.CurrentBookingID)
}

func TestTxManager_CommitAppliesAllWrites(t *testing.T) {
	store, slot := setupStore(t)
	txManager := NewTxManager(store, 0)
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	var createdID uuid.UUID
	err := txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := store.Slots().GetByIDForUpdate(txCtx, slot.ID); err != nil {
			return err
		}
		created, err := store.Bookings().Create(txCtx, newBooking(slot.ID, base, base.Add(time.Hour)))
		if err != nil {
			return err
		}
		createdID = created.ID
		return store.Slots().Claim(txCtx, slot.ID, created.ID)
	})
	require.NoError(t, err)

	active, err := store.Bookings().GetActiveBySlot(ctx, slot.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, createdID, active[0].ID)

	current, err := store.Slots().GetByID(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, current.CurrentBookingID)
	assert.Equal(t, createdID, *current.CurrentBookingID)
}

func TestTxManager_SlotLockTimesOut(t *testing.T) {
	store, slot := setupStore(t)
	holder := NewTxManager(store, 0)
	waiter := NewTxManager(store, 50*time.Millisecond)
	ctx := context.Background()

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- holder.DoSerializable(ctx, func(txCtx context.Context) error {
			if _, err := store.Slots().GetByIDForUpdate(txCtx, slot.ID); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	err := waiter.DoSerializable(ctx, func(txCtx context.Context) error {
		_, err := store.Slots().GetByIDForUpdate(txCtx, slot.ID)
		return err
	})
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-done)

	// После коммита блокировка снова доступна
	err = waiter.DoSerializable(ctx, func(txCtx context.Context) error {
		_, err := store.Slots().GetByIDForUpdate(txCtx, slot.ID)
		return err
	})
	assert.NoError(t, err)
}

func TestBookingRepository_Queries(t *testing.T) {
	store, slot := setupStore(t)
	ctx := context.Background()
	repo := store.Bookings()
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, newBooking(slot.ID, base, base.Add(2*time.Hour)))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newBooking(slot.ID, base.Add(2*time.Hour), base.Add(3*time.Hour)))
	require.NoError(t, err)

	cancelled := newBooking(slot.ID, base.Add(4*time.Hour), base.Add(5*time.Hour))
	cancelled.Status = domain.StatusCancelled
	_, err = repo.Create(ctx, cancelled)
	require.NoError(t, err)

	overlapping, err := repo.FindActiveOverlapping(ctx, slot.ID, base.Add(time.Hour), base.Add(5*time.Hour), nil)
	require.NoError(t, err)
	assert.Len(t, overlapping, 2)

	overlapping, err = repo.FindActiveOverlapping(ctx, slot.ID, base.Add(2*time.Hour), base.Add(3*time.Hour), &second.ID)
	require.NoError(t, err)
	assert.Empty(t, overlapping)

	active, err := repo.GetActiveBySlot(ctx, slot.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)

	count, err := repo.CountActiveByUser(ctx, 1, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	overdue, err := repo.ListOverdue(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, first.ID, overdue[0].ID)

	busy, err := repo.GetBusySlotIDs(ctx, base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{slot.ID}, busy)
}

func TestBookingRepository_ReturnsCopies(t *testing.T) {
	store, slot := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	created, err := store.Bookings().Create(ctx, newBooking(slot.ID, base, base.Add(time.Hour)))
	require.NoError(t, err)

	loaded, err := store.Bookings().GetByID(ctx, created.ID)
	require.NoError(t, err)
	loaded.Status = domain.StatusCancelled

	again, err := store.Bookings().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, again.Status)
}
