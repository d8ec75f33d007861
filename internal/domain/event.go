package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType type of a committed lifecycle transition
type EventType string

const (
	EventBookingCreated    EventType = "booking.created"
	EventBookingCancelled  EventType = "booking.cancelled"
	EventBookingExtended   EventType = "booking.extended"
	EventBookingCheckedIn  EventType = "booking.checked_in"
	EventBookingCompleted  EventType = "booking.completed"
	EventBookingExpired    EventType = "booking.expired"
	EventBookingNoShow     EventType = "booking.no_show"
	EventSlotStatusChanged EventType = "slot.status_changed"
)

// Event notification about a committed transition
type Event struct {
	Type       EventType     `json:"type"`
	BookingID  *uuid.UUID    `json:"booking_id,omitempty"`
	SlotID     uuid.UUID     `json:"slot_id"`
	UserID     int64         `json:"user_id,omitempty"`
	Status     BookingStatus `json:"status,omitempty"`
	Message    string        `json:"message,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewBookingEvent builds an event from the booking state after the transition
func NewBookingEvent(t EventType, b *Booking, message string, at time.Time) Event {
	id := b.ID
	return Event{
		Type:       t,
		BookingID:  &id,
		SlotID:     b.SlotID,
		UserID:     b.UserID,
		Status:     b.Status,
		Message:    message,
		OccurredAt: at,
	}
}

// NewSlotEvent builds a slot-level event
func NewSlotEvent(t EventType, s *ParkingSlot, message string, at time.Time) Event {
	return Event{
		Type:       t,
		SlotID:     s.ID,
		Message:    message,
		OccurredAt: at,
	}
}
