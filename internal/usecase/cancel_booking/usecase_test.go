package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
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

func TestExecute_OwnerCancelsBeforeCutoff(t *testing.T) {
	now := start.Add(-90 * time.Minute)
	env, uc, booking := setup(t, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.Equal(t, domain.ReasonCancelledByUser, resp.CancellationReason)
	assert.Equal(t, now, resp.CancelledAt)
	assert.Equal(t, int64(1), resp.CancelledBy)

	stored := env.Booking(t, booking.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancelledBy)
	assert.Equal(t, int64(1), *stored.CancelledBy)

	slot := env.Slot(t, booking.SlotID)
	assert.Nil(t, slot.CurrentBookingID)
	assert.True(t, slot.IsAvailable)

	assert.Equal(t, []domain.EventType{domain.EventBookingCancelled}, env.Notifier.Types())
	testutil.AssertSlotInvariants(t, env.Store)
}

func TestExecute_OwnerCannotCancelWithinCutoff(t *testing.T) {
	for _, before := range []time.Duration{30 * time.Minute, time.Hour} {
		env, uc, booking := setup(t, start.Add(-before))

		_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1})
		assert.ErrorIs(t, err, ErrCancellationWindowClosed, "cancel %s before start", before)

		assert.Equal(t, domain.StatusActive, env.Booking(t, booking.ID).Status)
		assert.Empty(t, env.Notifier.Events())
	}
}

func TestExecute_AdminOverridesCutoff(t *testing.T) {
	env, uc, booking := setup(t, start.Add(30*time.Minute))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 99, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonCancelledByAdmin, resp.CancellationReason)
	assert.Equal(t, int64(99), resp.CancelledBy)
	testutil.AssertSlotInvariants(t, env.Store)
}

func TestExecute_CustomReason(t *testing.T) {
	_, uc, booking := setup(t, start.Add(-3*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1, Reason: "  plans changed "})
	require.NoError(t, err)
	assert.Equal(t, "plans changed", resp.CancellationReason)
}

func TestExecute_Failures(t *testing.T) {
	tests := []struct {
		name    string
		req     func(b *domain.Booking) *Request
		wantErr error
	}{
		{
			name:    "unknown booking",
			req:     func(*domain.Booking) *Request { return &Request{BookingID: uuid.New(), CallerID: 1} },
			wantErr: ErrNotFound,
		},
		{
			name:    "not the owner",
			req:     func(b *domain.Booking) *Request { return &Request{BookingID: b.ID, CallerID: 2} },
			wantErr: ErrUnauthorized,
		},
		{
			name:    "missing caller",
			req:     func(b *domain.Booking) *Request { return &Request{BookingID: b.ID} },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, uc, booking := setup(t, start.Add(-3*time.Hour))

			_, err := uc.Execute(context.Background(), tt.req(booking))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_SecondCancelIsNotActive(t *testing.T) {
	_, uc, booking := setup(t, start.Add(-3*time.Hour))
	req := &Request{BookingID: booking.ID, CallerID: 1}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestExecute_SlotPassesToNextBooking(t *testing.T) {
	env, uc, first := setup(t, start.Add(-3*time.Hour))
	slot := env.Slot(t, first.SlotID)
	second := env.SeedBooking(t, slot, 2, start.Add(3*time.Hour), start.Add(4*time.Hour))

	_, err := uc.Execute(context.Background(), &Request{BookingID: first.ID, CallerID: 1})
	require.NoError(t, err)

	current := env.Slot(t, slot.ID)
	require.NotNil(t, current.CurrentBookingID)
	assert.Equal(t, second.ID, *current.CurrentBookingID)
	testutil.AssertSlotInvariants(t, env.Store)
}
