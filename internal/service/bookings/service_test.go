package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) (*testutil.Env, *Service) {
	env := testutil.NewEnv(t, at(11))
	svc := NewService(env.Store.Bookings(), env.Logger)
	svc.timeProvider = env.Clock
	return env, svc
}

func TestGetByID_Access(t *testing.T) {
	env, svc := setup(t)
	slot := env.AddSlot(t, nil)
	booking := env.SeedBooking(t, slot, 1, at(10), at(12))

	resp, err := svc.GetByID(context.Background(), booking.ID, 1, false)
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseInProgress), resp.Phase)
	assert.Equal(t, 2, resp.DurationHours)
	assert.Empty(t, resp.Extensions)

	_, err = svc.GetByID(context.Background(), booking.ID, 2, false)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.GetByID(context.Background(), booking.ID, 2, true)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), uuid.New(), 1, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserBookings(t *testing.T) {
	env, svc := setup(t)
	slot := env.AddSlot(t, nil)
	older := env.SeedBooking(t, slot, 1, at(12), at(13))
	newer := env.SeedBooking(t, slot, 1, at(14), at(15))
	env.SeedBooking(t, slot, 2, at(16), at(17))

	older.Status = domain.StatusCancelled
	require.NoError(t, env.Store.Bookings().Update(context.Background(), older))

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 1, CallerID: 1})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, newer.ID, resp.Bookings[0].ID)
	assert.Equal(t, string(domain.PhaseUpcoming), resp.Bookings[0].Phase)
	assert.Equal(t, string(domain.PhaseClosed), resp.Bookings[1].Phase)

	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 1, CallerID: 1, Status: ptr.Ptr(string(domain.StatusActive)),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 1, CallerID: 2})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 1, CallerID: 1, Status: ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_AdminFilters(t *testing.T) {
	env, svc := setup(t)
	first := env.AddSlot(t, nil)
	second := env.AddSlot(t, func(s *domain.ParkingSlot) { s.Location = domain.LocationMainCampus })
	env.SeedBooking(t, first, 1, at(12), at(13))
	env.SeedBooking(t, second, 2, at(14), at(15))

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{
		IsAdmin: true, Location: ptr.Ptr(string(domain.LocationMainCampus)),
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, second.ID, resp.Bookings[0].SlotID)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{
		IsAdmin: true, StartFrom: ptr.Ptr(at(12)), StartTo: ptr.Ptr(at(13)),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{
		IsAdmin: true, StartFrom: ptr.Ptr(at(13)), StartTo: ptr.Ptr(at(12)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
