package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func TestCreate_AppliesDefaults(t *testing.T) {
	env := testutil.NewEnv(t, now)
	svc := NewService(env.Store.Slots(), env.Logger)

	resp, err := svc.Create(context.Background(), &models.CreateSlotRequest{
		SlotNumber:  " a101 ",
		Location:    string(domain.LocationBuildingA),
		VehicleType: string(domain.VehicleAny),
	})
	require.NoError(t, err)

	assert.Equal(t, "A101", resp.SlotNumber)
	assert.Equal(t, string(domain.ReservedGeneral), resp.ReservedFor)
	assert.Equal(t, domain.DefaultHourlyRate, resp.HourlyRate)
	assert.True(t, resp.IsActive)
	assert.True(t, resp.IsAvailable)
	assert.Nil(t, resp.CurrentBookingID)
}

func TestCreate_Validation(t *testing.T) {
	env := testutil.NewEnv(t, now)
	svc := NewService(env.Store.Slots(), env.Logger)

	valid := models.CreateSlotRequest{
		SlotNumber:  "B1",
		Location:    string(domain.LocationBuildingB),
		VehicleType: string(domain.VehicleCar),
	}
	_, err := svc.Create(context.Background(), &valid)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(r *models.CreateSlotRequest)
	}{
		{name: "duplicate number", mutate: func(r *models.CreateSlotRequest) { r.SlotNumber = "b1" }},
		{name: "empty number", mutate: func(r *models.CreateSlotRequest) { r.SlotNumber = "" }},
		{name: "unknown location", mutate: func(r *models.CreateSlotRequest) { r.Location = "Mars" }},
		{name: "unknown vehicle", mutate: func(r *models.CreateSlotRequest) { r.VehicleType = "truck" }},
		{name: "unknown category", mutate: func(r *models.CreateSlotRequest) { r.ReservedFor = "vip" }},
		{name: "zero rate", mutate: func(r *models.CreateSlotRequest) { r.HourlyRate = ptr.Ptr(0.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.SlotNumber = "C2"
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDelete_RefusedWhileClaimed(t *testing.T) {
	env := testutil.NewEnv(t, now)
	svc := NewService(env.Store.Slots(), env.Logger)
	slot := env.AddSlot(t, nil)
	booking := env.SeedBooking(t, slot, 1, now.Add(time.Hour), now.Add(2*time.Hour))

	err := svc.Delete(context.Background(), slot.ID)
	assert.ErrorIs(t, err, ErrSlotOccupied)

	booking.Status = domain.StatusCancelled
	require.NoError(t, env.Store.Bookings().Update(context.Background(), booking))
	_, err = env.Allocator.Reconcile(context.Background(), slot.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), slot.ID))

	_, err = svc.GetByID(context.Background(), slot.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), slot.ID), ErrNotFound)
}

func TestSeed_IsDeterministicAndIdempotent(t *testing.T) {
	env := testutil.NewEnv(t, now)
	svc := NewService(env.Store.Slots(), env.Logger)

	created, err := svc.Seed(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, 20, created)

	created, err = svc.Seed(context.Background(), 20)
	require.NoError(t, err)
	assert.Zero(t, created)

	list, err := svc.List(context.Background(), &models.ListSlotsRequest{})
	require.NoError(t, err)
	require.Equal(t, 20, list.Total)
	assert.Equal(t, "P001", list.Slots[0].SlotNumber)
	assert.Equal(t, string(domain.Locations[0]), list.Slots[0].Location)
	assert.Equal(t, string(domain.ReservedFaculty), list.Slots[4].ReservedFor)
	assert.Equal(t, string(domain.VehicleMotorcycle), list.Slots[6].VehicleType)
	assert.Equal(t, string(domain.ReservedDisabled), list.Slots[9].ReservedFor)

	byLocation, err := svc.List(context.Background(), &models.ListSlotsRequest{Location: ptr.Ptr(string(domain.Locations[1]))})
	require.NoError(t, err)
	assert.Equal(t, 4, byLocation.Total)

	_, err = svc.List(context.Background(), &models.ListSlotsRequest{VehicleType: ptr.Ptr("any")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
