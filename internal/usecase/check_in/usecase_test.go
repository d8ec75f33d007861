package check_in

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
)

var start = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T, now time.Time) (*testutil.Env, *UseCase, *domain.Booking) {
	env := testutil.NewEnv(t, now)
	slot := env.AddSlot(t, nil)
	booking := env.SeedBooking(t, slot, 1, start, start.Add(2*time.Hour))

	uc := NewUseCase(env.Store.Bookings(), env.Allocator, env.Notifier, env.TxManager, domain.DefaultBookingPolicy(), env.Logger)
	uc.timeProvider = env.Clock
	return env, uc, booking
}

func TestExecute_ChecksInWithinGrace(t *testing.T) {
	now := start.Add(-15 * time.Minute)
	env, uc, booking := setup(t, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1})
	require.NoError(t, err)
	assert.Equal(t, now, resp.CheckInTime)

	stored := env.Booking(t, booking.ID)
	require.NotNil(t, stored.CheckInTime)
	assert.Equal(t, now, *stored.CheckInTime)
	assert.Equal(t, domain.StatusActive, stored.Status)
	assert.Equal(t, []domain.EventType{domain.EventBookingCheckedIn}, env.Notifier.Types())
}

func TestExecute_ChecksInAtEnd(t *testing.T) {
	_, uc, booking := setup(t, start.Add(2*time.Hour))

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1})
	assert.NoError(t, err)
}

func TestExecute_TooEarly(t *testing.T) {
	env, uc, booking := setup(t, start.Add(-16*time.Minute))

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1})
	assert.ErrorIs(t, err, ErrTooEarly)
	assert.Nil(t, env.Booking(t, booking.ID).CheckInTime)
}

func TestExecute_WindowExpired(t *testing.T) {
	_, uc, booking := setup(t, start.Add(2*time.Hour+time.Second))

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1})
	assert.ErrorIs(t, err, ErrWindowExpired)
}

func TestExecute_AlreadyCheckedIn(t *testing.T) {
	env, uc, booking := setup(t, start)
	req := &Request{BookingID: booking.ID, CallerID: 1}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	env.Clock.Advance(10 * time.Minute)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestExecute_ForeignBooking(t *testing.T) {
	_, uc, booking := setup(t, start)

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 5})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExecute_NotActive(t *testing.T) {
	env, uc, booking := setup(t, start)
	booking.Status = domain.StatusCancelled
	require.NoError(t, env.Store.Bookings().Update(context.Background(), booking))

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1})
	assert.ErrorIs(t, err, ErrNotActive)
}
