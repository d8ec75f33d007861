package find_available_slots

import (
	"context"
	"errors"
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

func numbers(resp *Response) []string {
	result := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		result = append(result, s.SlotNumber)
	}
	return result
}

func TestExecute_FiltersSlots(t *testing.T) {
	env := testutil.NewEnv(t, at(8))
	env.AddSlot(t, nil) // P001
	env.AddSlot(t, func(s *domain.ParkingSlot) { s.IsActive = false })
	env.AddSlot(t, func(s *domain.ParkingSlot) { s.MaintenanceStatus = domain.MaintenanceOutOfOrder })
	env.AddSlot(t, func(s *domain.ParkingSlot) { s.ReservedFor = domain.ReservedFaculty }) // P004
	env.AddSlot(t, func(s *domain.ParkingSlot) { s.Location = domain.LocationBuildingC })   // P005
	env.AddSlot(t, func(s *domain.ParkingSlot) { s.VehicleType = domain.VehicleBicycle })   // P006

	uc := NewUseCase(env.Store.Slots(), env.Store.Bookings(), env.TxManager, env.Logger)

	tests := []struct {
		name string
		req  *Request
		want []string
	}{
		{
			name: "student sees open slots",
			req:  &Request{Role: domain.RoleStudent},
			want: []string{"P001", "P005", "P006"},
		},
		{
			name: "faculty also sees faculty slots",
			req:  &Request{Role: domain.RoleFaculty},
			want: []string{"P001", "P004", "P005", "P006"},
		},
		{
			name: "by location",
			req:  &Request{Role: domain.RoleStudent, Location: ptr.Ptr(domain.LocationBuildingC)},
			want: []string{"P005"},
		},
		{
			name: "by vehicle type",
			req:  &Request{Role: domain.RoleStudent, VehicleType: ptr.Ptr(domain.VehicleBicycle)},
			want: []string{"P006"},
		},
		{
			name: "no match",
			req:  &Request{Role: domain.RoleVisitor, Location: ptr.Ptr(domain.LocationSportsComplex)},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, numbers(resp))
			assert.Equal(t, len(tt.want), resp.Total)
		})
	}
}

func TestExecute_WindowExcludesOverlappingBookings(t *testing.T) {
	env := testutil.NewEnv(t, at(8))
	first := env.AddSlot(t, nil)
	env.AddSlot(t, nil)
	env.SeedBooking(t, first, 1, at(10), at(12))

	uc := NewUseCase(env.Store.Slots(), env.Store.Bookings(), env.TxManager, env.Logger)

	resp, err := uc.Execute(context.Background(), &Request{
		Role: domain.RoleStudent, StartTime: ptr.Ptr(at(11)), EndTime: ptr.Ptr(at(13)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"P002"}, numbers(resp))
	require.NotNil(t, resp.Slots[0].EstimatedAmount)
	assert.InDelta(t, 10.00, *resp.Slots[0].EstimatedAmount, 0.001)

	// Окно сразу после брони не пересекается с ней
	resp, err = uc.Execute(context.Background(), &Request{
		Role: domain.RoleStudent, StartTime: ptr.Ptr(at(12)), EndTime: ptr.Ptr(at(13)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"P001", "P002"}, numbers(resp))

	// Без окна слот с бронью остается в выдаче с флагом текущей занятости
	resp, err = uc.Execute(context.Background(), &Request{Role: domain.RoleStudent})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.False(t, resp.Slots[0].IsAvailable)
	assert.True(t, resp.Slots[1].IsAvailable)
	assert.Nil(t, resp.Slots[0].EstimatedAmount)
}

func TestExecute_InvalidFilters(t *testing.T) {
	env := testutil.NewEnv(t, at(8))
	uc := NewUseCase(env.Store.Slots(), env.Store.Bookings(), env.TxManager, env.Logger)

	_, err := uc.Execute(context.Background(), &Request{Role: "janitor"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Role: domain.RoleStudent, StartTime: ptr.Ptr(at(10))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Role: domain.RoleStudent, StartTime: ptr.Ptr(at(10)), EndTime: ptr.Ptr(at(10)),
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

type flakySlots struct {
	SlotRepository
	failures int
	calls    int
}

func (f *flakySlots) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.ParkingSlot, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection reset")
	}
	return f.SlotRepository.List(ctx, filter)
}

func TestExecute_RetriesFailedReads(t *testing.T) {
	env := testutil.NewEnv(t, at(8))
	env.AddSlot(t, nil)

	repo := &flakySlots{SlotRepository: env.Store.Slots(), failures: 2}
	uc := NewUseCase(repo, env.Store.Bookings(), env.TxManager, env.Logger)

	resp, err := uc.Execute(context.Background(), &Request{Role: domain.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 3, repo.calls)
}

func TestExecute_GivesUpAfterThreeAttempts(t *testing.T) {
	env := testutil.NewEnv(t, at(8))
	env.AddSlot(t, nil)

	repo := &flakySlots{SlotRepository: env.Store.Slots(), failures: 10}
	uc := NewUseCase(repo, env.Store.Bookings(), env.TxManager, env.Logger)

	_, err := uc.Execute(context.Background(), &Request{Role: domain.RoleStudent})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, maxReadAttempts, repo.calls)
}
