package sweep_expired

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

func newUseCase(t *testing.T, env *testutil.Env, unattended domain.BookingStatus) *UseCase {
	uc, err := NewUseCase(env.Store.Bookings(), env.Allocator, env.Notifier, env.TxManager, unattended, env.Logger)
	require.NoError(t, err)
	return uc
}

func TestExecute_ClosesOverdueBookings(t *testing.T) {
	env := testutil.NewEnv(t, at(8))
	slot := env.AddSlot(t, nil)
	other := env.AddSlot(t, nil)

	unattended := env.SeedBooking(t, slot, 1, at(9), at(10))
	attended := env.SeedBooking(t, other, 2, at(9), at(11))
	attended.CheckInTime = ptr.Ptr(at(9))
	require.NoError(t, env.Store.Bookings().Update(context.Background(), attended))
	upcoming := env.SeedBooking(t, slot, 3, at(12), at(13))

	uc := newUseCase(t, env, domain.StatusNoShow)
	resp, err := uc.Execute(context.Background(), &Request{Now: at(11)})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Transitioned)
	assert.Equal(t, 1, resp.NoShow)
	assert.Equal(t, 1, resp.Expired)
	assert.Zero(t, resp.Failed)

	assert.Equal(t, domain.StatusNoShow, env.Booking(t, unattended.ID).Status)
	assert.Equal(t, domain.StatusExpired, env.Booking(t, attended.ID).Status)
	assert.Equal(t, domain.StatusActive, env.Booking(t, upcoming.ID).Status)

	// Слот переходит к следующей брони, второй слот свободен
	current := env.Slot(t, slot.ID)
	require.NotNil(t, current.CurrentBookingID)
	assert.Equal(t, upcoming.ID, *current.CurrentBookingID)
	assert.Nil(t, env.Slot(t, other.ID).CurrentBookingID)

	assert.ElementsMatch(t, []domain.EventType{domain.EventBookingNoShow, domain.EventBookingExpired}, env.Notifier.Types())
	testutil.AssertSlotInvariants(t, env.Store)
}

func TestExecute_IsIdempotent(t *testing.T) {
	env := testutil.NewEnv(t, at(8))
	slot := env.AddSlot(t, nil)
	env.SeedBooking(t, slot, 1, at(9), at(10))

	uc := newUseCase(t, env, domain.StatusExpired)

	first, err := uc.Execute(context.Background(), &Request{Now: at(10)})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Transitioned)
	assert.Equal(t, 1, first.Expired)

	second, err := uc.Execute(context.Background(), &Request{Now: at(10)})
	require.NoError(t, err)
	assert.Zero(t, second.Transitioned)
	assert.Len(t, env.Notifier.Events(), 1)
	testutil.AssertSlotInvariants(t, env.Store)
}

func TestExecute_BookingEndingExactlyNowIsOverdue(t *testing.T) {
	env := testutil.NewEnv(t, at(8))
	slot := env.AddSlot(t, nil)
	booking := env.SeedBooking(t, slot, 1, at(9), at(10))

	uc := newUseCase(t, env, domain.StatusNoShow)

	resp, err := uc.Execute(context.Background(), &Request{Now: at(10).Add(-time.Second)})
	require.NoError(t, err)
	assert.Zero(t, resp.Transitioned)

	resp, err = uc.Execute(context.Background(), &Request{Now: at(10)})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Transitioned)
	assert.Equal(t, domain.StatusNoShow, env.Booking(t, booking.ID).Status)
}

func TestNewUseCase_RejectsUnknownStatus(t *testing.T) {
	env := testutil.NewEnv(t, at(8))

	_, err := NewUseCase(env.Store.Bookings(), env.Allocator, env.Notifier, env.TxManager, domain.StatusCancelled, env.Logger)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
