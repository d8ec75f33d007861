package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusExpired   BookingStatus = "expired"
	StatusNoShow    BookingStatus = "no-show"
)

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled, StatusExpired, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal returns true once no further transition is possible
func (s BookingStatus) IsTerminal() bool {
	return s != StatusActive
}

// BookingPhase real-time state of an active booking relative to now
type BookingPhase string

const (
	PhaseUpcoming   BookingPhase = "upcoming"
	PhaseInProgress BookingPhase = "in-progress"
	PhaseOverdue    BookingPhase = "overdue"
	PhaseClosed     BookingPhase = "closed"
)

// Vehicle vehicle the booking was made for
type Vehicle struct {
	Number string
	Type   VehicleType
}

// Extension one extension of a booking's end time
type Extension struct {
	OriginalEndTime time.Time
	NewEndTime      time.Time
	AddedHours      int
	AddedAmount     float64
	ExtendedAt      time.Time
}

// Booking represents a parking reservation of a slot for a half-open window [StartTime, EndTime)
type Booking struct {
	ID       uuid.UUID
	UserID   int64
	SlotID   uuid.UUID
	Vehicle  Vehicle
	Location Location

	StartTime     time.Time
	EndTime       time.Time
	DurationHours int
	Status        BookingStatus
	TotalAmount   float64

	CheckInTime  *time.Time
	CheckOutTime *time.Time

	ExtensionHistory []Extension

	CancellationReason *string
	CancelledAt        *time.Time
	CancelledBy        *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking is in the active state
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsExtended returns true if the booking was extended at least once
func (b *Booking) IsExtended() bool {
	return len(b.ExtensionHistory) > 0
}

// IsCheckedIn returns true if the user has arrived
func (b *Booking) IsCheckedIn() bool {
	return b.CheckInTime != nil
}

// IsCheckedOut returns true if the user has left
func (b *Booking) IsCheckedOut() bool {
	return b.CheckOutTime != nil
}

// Overlaps checks the half-open windows [StartTime, EndTime) and [start, end) for intersection
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// ActualDurationHours returns the hours between check-in and check-out, 0 if either is missing
func (b *Booking) ActualDurationHours() float64 {
	if b.CheckInTime == nil || b.CheckOutTime == nil {
		return 0
	}
	return b.CheckOutTime.Sub(*b.CheckInTime).Hours()
}

// Phase returns the real-time phase of the booking at now
func (b *Booking) Phase(now time.Time) BookingPhase {
	switch {
	case b.Status != StatusActive:
		return PhaseClosed
	case now.Before(b.StartTime):
		return PhaseUpcoming
	case now.Before(b.EndTime):
		return PhaseInProgress
	default:
		return PhaseOverdue
	}
}

// Clone returns a deep copy of the booking
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	c.CheckInTime = cloneTime(b.CheckInTime)
	c.CheckOutTime = cloneTime(b.CheckOutTime)
	c.CancelledAt = cloneTime(b.CancelledAt)
	if b.CancellationReason != nil {
		reason := *b.CancellationReason
		c.CancellationReason = &reason
	}
	if b.CancelledBy != nil {
		by := *b.CancelledBy
		c.CancelledBy = &by
	}
	if b.ExtensionHistory != nil {
		c.ExtensionHistory = append([]Extension(nil), b.ExtensionHistory...)
	}
	return &c
}

// Overlaps checks two half-open windows for intersection: aStart < bEnd && aEnd > bStart
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// BillableHours rounds a window up to whole hours
func BillableHours(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()))
}

// Amount returns the price of hours at hourlyRate, rounded to cents
func Amount(hours int, hourlyRate float64) float64 {
	return RoundAmount(float64(hours) * hourlyRate)
}

// RoundAmount rounds a money value to cents
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// BookingFilter filter for booking listings
type BookingFilter struct {
	UserID    *int64         // nil - any user
	SlotID    *uuid.UUID     // nil - any slot
	Location  *Location      // nil - any location
	Status    *BookingStatus // nil - any status
	StartFrom *time.Time     // StartTime >= StartFrom
	StartTo   *time.Time     // StartTime < StartTo
}

// Matches checks the booking against the filter
func (f BookingFilter) Matches(b *Booking) bool {
	if f.UserID != nil && b.UserID != *f.UserID {
		return false
	}
	if f.SlotID != nil && b.SlotID != *f.SlotID {
		return false
	}
	if f.Location != nil && b.Location != *f.Location {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.StartFrom != nil && b.StartTime.Before(*f.StartFrom) {
		return false
	}
	if f.StartTo != nil && !b.StartTime.Before(*f.StartTo) {
		return false
	}
	return true
}
