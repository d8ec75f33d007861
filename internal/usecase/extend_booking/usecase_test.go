package extend_booking

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

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

func setup(t *testing.T, now time.Time) (*testutil.Env, *UseCase, *domain.ParkingSlot, *domain.Booking) {
	env := testutil.NewEnv(t, now)
	slot := env.AddSlot(t, nil)
	booking := env.SeedBooking(t, slot, 1, at(10), at(12))

	uc := NewUseCase(env.Store.Bookings(), env.Allocator, env.Notifier, env.TxManager, domain.DefaultBookingPolicy(), env.Logger)
	uc.timeProvider = env.Clock
	return env, uc, slot, booking
}

func TestExecute_ConflictWithAdjacentBooking(t *testing.T) {
	env, uc, slot, booking := setup(t, at(11))
	env.SeedBooking(t, slot, 2, at(12), at(13))

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1, AdditionalHours: 2})
	assert.ErrorIs(t, err, ErrExtensionConflict)

	stored := env.Booking(t, booking.ID)
	assert.Equal(t, at(12), stored.EndTime)
	assert.Empty(t, stored.ExtensionHistory)
	assert.Empty(t, env.Notifier.Events())
}

func TestExecute_ExtendsUpToNextBooking(t *testing.T) {
	env, uc, slot, booking := setup(t, at(11))
	env.SeedBooking(t, slot, 2, at(13), at(14))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1, AdditionalHours: 1})
	require.NoError(t, err)

	assert.Equal(t, at(13), resp.EndTime)
	assert.Equal(t, 3, resp.DurationHours)
	assert.InDelta(t, 15.00, resp.TotalAmount, 0.001)
	assert.Equal(t, 1, resp.ExtensionCount)
	assert.Equal(t, at(12), resp.Extension.OriginalEndTime)
	assert.InDelta(t, 5.00, resp.Extension.AddedAmount, 0.001)

	stored := env.Booking(t, booking.ID)
	require.Len(t, stored.ExtensionHistory, 1)
	assert.Equal(t, at(11), stored.ExtensionHistory[0].ExtendedAt)

	assert.Equal(t, []domain.EventType{domain.EventBookingExtended}, env.Notifier.Types())
	testutil.AssertSlotInvariants(t, env.Store)
}

func TestExecute_ExtendTwice(t *testing.T) {
	env, uc, _, booking := setup(t, at(10))

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1, AdditionalHours: 1})
	require.NoError(t, err)

	env.Clock.Set(at(13))
	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 1, AdditionalHours: 4})
	require.NoError(t, err)

	assert.Equal(t, at(17), resp.EndTime)
	assert.Equal(t, 7, resp.DurationHours)
	assert.InDelta(t, 35.00, resp.TotalAmount, 0.001)
	assert.Equal(t, 2, resp.ExtensionCount)
}

func TestExecute_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		req     func(b *domain.Booking) *Request
		wantErr error
	}{
		{
			name:    "before start",
			now:     at(9),
			req:     func(b *domain.Booking) *Request { return &Request{BookingID: b.ID, CallerID: 1, AdditionalHours: 1} },
			wantErr: ErrNotExtendable,
		},
		{
			name:    "after end",
			now:     at(12).Add(time.Minute),
			req:     func(b *domain.Booking) *Request { return &Request{BookingID: b.ID, CallerID: 1, AdditionalHours: 1} },
			wantErr: ErrNotExtendable,
		},
		{
			name:    "zero hours",
			now:     at(11),
			req:     func(b *domain.Booking) *Request { return &Request{BookingID: b.ID, CallerID: 1, AdditionalHours: 0} },
			wantErr: ErrInvalidExtension,
		},
		{
			name:    "five hours",
			now:     at(11),
			req:     func(b *domain.Booking) *Request { return &Request{BookingID: b.ID, CallerID: 1, AdditionalHours: 5} },
			wantErr: ErrInvalidExtension,
		},
		{
			name:    "not checked before window",
			now:     at(9),
			req:     func(b *domain.Booking) *Request { return &Request{BookingID: b.ID, CallerID: 1, AdditionalHours: 9} },
			wantErr: ErrNotExtendable,
		},
		{
			name:    "someone else",
			now:     at(11),
			req:     func(b *domain.Booking) *Request { return &Request{BookingID: b.ID, CallerID: 7, AdditionalHours: 1} },
			wantErr: ErrUnauthorized,
		},
		{
			name:    "unknown booking",
			now:     at(11),
			req:     func(*domain.Booking) *Request { return &Request{BookingID: uuid.New(), CallerID: 1, AdditionalHours: 1} },
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, uc, _, booking := setup(t, tt.now)

			_, err := uc.Execute(context.Background(), tt.req(booking))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_AdminExtendsForeignBooking(t *testing.T) {
	_, uc, _, booking := setup(t, at(11))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, CallerID: 99, IsAdmin: true, AdditionalHours: 2})
	require.NoError(t, err)
	assert.Equal(t, at(14), resp.EndTime)
}
