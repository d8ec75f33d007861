package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps_HalfOpen(t *testing.T) {
	tests := []struct {
		name       string
		aStart     time.Time
		aEnd       time.Time
		bStart     time.Time
		bEnd       time.Time
		overlapped bool
	}{
		{"same window", at(10, 0), at(12, 0), at(10, 0), at(12, 0), true},
		{"touching end to start", at(10, 0), at(12, 0), at(12, 0), at(13, 0), false},
		{"touching start to end", at(12, 0), at(13, 0), at(10, 0), at(12, 0), false},
		{"nested", at(10, 0), at(14, 0), at(11, 0), at(12, 0), true},
		{"partial", at(10, 0), at(12, 0), at(11, 30), at(13, 0), true},
		{"disjoint", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlapped, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestBillableHoursAndAmount(t *testing.T) {
	hours := BillableHours(at(9, 0), at(11, 30))
	assert.Equal(t, 3, hours)
	assert.Equal(t, 15.00, Amount(hours, 5.00))

	assert.Equal(t, 2, BillableHours(at(9, 0), at(11, 0)))
	assert.Equal(t, 1, BillableHours(at(9, 0), at(9, 1)))
	assert.Equal(t, 7.5, Amount(3, 2.5))
}

func TestBooking_Phase(t *testing.T) {
	b := &Booking{Status: StatusActive, StartTime: at(10, 0), EndTime: at(12, 0)}

	assert.Equal(t, PhaseUpcoming, b.Phase(at(9, 0)))
	assert.Equal(t, PhaseInProgress, b.Phase(at(10, 0)))
	assert.Equal(t, PhaseOverdue, b.Phase(at(12, 0)))

	b.Status = StatusCompleted
	assert.Equal(t, PhaseClosed, b.Phase(at(11, 0)))
}

func TestBooking_CloneIsDeep(t *testing.T) {
	checkIn := at(10, 0)
	reason := "reason"
	b := &Booking{
		ID:                 uuid.New(),
		CheckInTime:        &checkIn,
		CancellationReason: &reason,
		ExtensionHistory:   []Extension{{AddedHours: 1}},
	}

	c := b.Clone()
	*c.CheckInTime = at(11, 0)
	*c.CancellationReason = "changed"
	c.ExtensionHistory[0].AddedHours = 3

	assert.Equal(t, at(10, 0), *b.CheckInTime)
	assert.Equal(t, "reason", *b.CancellationReason)
	assert.Equal(t, 1, b.ExtensionHistory[0].AddedHours)
	assert.True(t, b.IsExtended())
}

func TestBooking_ActualDurationHours(t *testing.T) {
	in, out := at(10, 0), at(11, 30)
	b := &Booking{CheckInTime: &in}
	assert.Zero(t, b.ActualDurationHours())

	b.CheckOutTime = &out
	assert.Equal(t, 1.5, b.ActualDurationHours())
}

func TestSlot_ComputeAvailability(t *testing.T) {
	s := &ParkingSlot{IsActive: true, MaintenanceStatus: MaintenanceOperational}
	assert.True(t, s.ComputeAvailability())

	id := uuid.New()
	s.CurrentBookingID = &id
	assert.False(t, s.ComputeAvailability())

	s.CurrentBookingID = nil
	s.MaintenanceStatus = MaintenanceOutOfOrder
	assert.False(t, s.ComputeAvailability())

	s.MaintenanceStatus = MaintenanceOperational
	s.IsActive = false
	assert.False(t, s.ComputeAvailability())
}

func TestSlot_AcceptsVehicle(t *testing.T) {
	anySlot := &ParkingSlot{VehicleType: VehicleAny}
	carSlot := &ParkingSlot{VehicleType: VehicleCar}

	assert.True(t, anySlot.AcceptsVehicle(VehicleBicycle))
	assert.True(t, carSlot.AcceptsVehicle(VehicleCar))
	assert.False(t, carSlot.AcceptsVehicle(VehicleMotorcycle))
}

func TestRole_CanUse(t *testing.T) {
	tests := []struct {
		role     Role
		category ReservedFor
		allowed  bool
	}{
		{RoleStudent, ReservedGeneral, true},
		{RoleVisitor, ReservedGeneral, true},
		{RoleFaculty, ReservedFaculty, true},
		{RoleAdmin, ReservedFaculty, true},
		{RoleStudent, ReservedFaculty, false},
		{RoleStudent, ReservedStudent, true},
		{RoleAdmin, ReservedStudent, true},
		{RoleFaculty, ReservedStudent, false},
		{RoleDisabled, ReservedDisabled, true},
		{RoleAdmin, ReservedDisabled, false},
		{RoleVisitor, ReservedVisitor, true},
		{RoleStudent, ReservedVisitor, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s on %s", tt.role, tt.category), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.role.CanUse(tt.category))
		})
	}
}

func TestPermissionsFor(t *testing.T) {
	admin := PermissionsFor(RoleAdmin)
	assert.True(t, admin.Has(PermCancelAnyBooking))
	assert.True(t, admin.Has(PermManageSlots))

	student := PermissionsFor(RoleStudent)
	assert.True(t, student.Has(PermCreateBooking))
	assert.False(t, student.Has(PermCancelAnyBooking))

	assert.Empty(t, PermissionsFor(Role("janitor")))
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleFaculty.IsAdmin())
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("faculty")
	assert.True(t, ok)
	assert.Equal(t, RoleFaculty, r)

	_, ok = ParseRole("superadmin")
	assert.False(t, ok)
}

func TestError_IsMatchesByKind(t *testing.T) {
	wrapped := fmt.Errorf("%w: slot P001 taken", ErrSlotConflict)

	assert.True(t, errors.Is(wrapped, ErrSlotConflict))
	assert.False(t, errors.Is(wrapped, ErrTooEarly))

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindSlotConflict, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestBookingFilter_Matches(t *testing.T) {
	userID := int64(7)
	status := StatusActive
	b := &Booking{UserID: 7, Status: StatusActive, StartTime: at(10, 0)}

	assert.True(t, BookingFilter{UserID: &userID, Status: &status}.Matches(b))

	from := at(11, 0)
	assert.False(t, BookingFilter{StartFrom: &from}.Matches(b))

	to := at(10, 0)
	assert.False(t, BookingFilter{StartTo: &to}.Matches(b))
}
