package domain

import "time"

// Default booking policy values
const (
	DefaultMaxAdvanceDays      = 30
	DefaultMaxDurationHours    = 8
	DefaultMaxActiveBookings   = 3
	DefaultCancelCutoffMinutes = 60
	DefaultCheckInGraceMinutes = 15
	DefaultMinExtensionHours   = 1
	DefaultMaxExtensionHours   = 4
	DefaultHourlyRate          = 5.00
)

// Cancellation reasons written by the system
const (
	ReasonCancelledByUser  = "Cancelled by user"
	ReasonCancelledByAdmin = "Cancelled by admin"
	ReasonSlotMaintenance  = "Slot maintenance"
)

// MaxCancellationReasonLength limit for a user-provided cancellation reason
const MaxCancellationReasonLength = 500

// Time format constants
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = time.RFC3339
)

// BookingPolicy numeric rules of the booking lifecycle
type BookingPolicy struct {
	MaxAdvance        time.Duration // start must be within now + MaxAdvance
	MaxDuration       time.Duration // end - start must not exceed
	MaxActiveBookings int           // active bookings per user with EndTime >= now
	CancelCutoff      time.Duration // non-admin cancel allowed only while now < start - CancelCutoff
	CheckInGrace      time.Duration // check-in allowed from start - CheckInGrace
	MinExtensionHours int
	MaxExtensionHours int
}

// DefaultBookingPolicy returns the campus defaults
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		MaxAdvance:        DefaultMaxAdvanceDays * 24 * time.Hour,
		MaxDuration:       DefaultMaxDurationHours * time.Hour,
		MaxActiveBookings: DefaultMaxActiveBookings,
		CancelCutoff:      DefaultCancelCutoffMinutes * time.Minute,
		CheckInGrace:      DefaultCheckInGraceMinutes * time.Minute,
		MinExtensionHours: DefaultMinExtensionHours,
		MaxExtensionHours: DefaultMaxExtensionHours,
	}
}
