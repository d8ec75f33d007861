package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location campus location of a parking slot
type Location string

const (
	LocationBuildingA     Location = "Building A"
	LocationBuildingB     Location = "Building B"
	LocationBuildingC     Location = "Building C"
	LocationMainCampus    Location = "Main Campus"
	LocationSportsComplex Location = "Sports Complex"
)

// Locations all known locations in display order
var Locations = []Location{
	LocationBuildingA,
	LocationBuildingB,
	LocationBuildingC,
	LocationMainCampus,
	LocationSportsComplex,
}

// IsValid returns true for a known location
func (l Location) IsValid() bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// VehicleType type of a vehicle; VehicleAny is valid only for slots
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleBicycle    VehicleType = "bicycle"
	VehicleAny        VehicleType = "any"
)

// IsValidForBooking returns true for a concrete vehicle type
func (v VehicleType) IsValidForBooking() bool {
	return v == VehicleCar || v == VehicleMotorcycle || v == VehicleBicycle
}

// IsValidForSlot returns true for a concrete vehicle type or VehicleAny
func (v VehicleType) IsValidForSlot() bool {
	return v.IsValidForBooking() || v == VehicleAny
}

// ReservedFor user category a slot is reserved for
type ReservedFor string

const (
	ReservedGeneral  ReservedFor = "general"
	ReservedFaculty  ReservedFor = "faculty"
	ReservedStudent  ReservedFor = "student"
	ReservedDisabled ReservedFor = "disabled"
	ReservedVisitor  ReservedFor = "visitor"
)

// IsValid returns true for a known category
func (r ReservedFor) IsValid() bool {
	switch r {
	case ReservedGeneral, ReservedFaculty, ReservedStudent, ReservedDisabled, ReservedVisitor:
		return true
	}
	return false
}

// MaintenanceStatus operational state of a slot
type MaintenanceStatus string

const (
	MaintenanceOperational MaintenanceStatus = "operational"
	MaintenanceInProgress  MaintenanceStatus = "maintenance"
	MaintenanceOutOfOrder  MaintenanceStatus = "out-of-order"
)

// IsValid returns true for a known maintenance status
func (m MaintenanceStatus) IsValid() bool {
	return m == MaintenanceOperational || m == MaintenanceInProgress || m == MaintenanceOutOfOrder
}

// ParkingSlot represents a physical parking space
type ParkingSlot struct {
	ID                uuid.UUID
	SlotNumber        string
	Location          Location
	VehicleType       VehicleType
	ReservedFor       ReservedFor
	HourlyRate        float64
	IsActive          bool
	MaintenanceStatus MaintenanceStatus

	// CurrentBookingID and IsAvailable change only through SlotStore claim/release
	CurrentBookingID *uuid.UUID
	IsAvailable      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOperational returns true if the slot is not under maintenance
func (s *ParkingSlot) IsOperational() bool {
	return s.MaintenanceStatus == MaintenanceOperational
}

// ComputeAvailability evaluates isAvailable from the current holder and operational state
func (s *ParkingSlot) ComputeAvailability() bool {
	return s.CurrentBookingID == nil && s.IsActive && s.IsOperational()
}

// AcceptsVehicle returns true if the slot fits the vehicle type
func (s *ParkingSlot) AcceptsVehicle(v VehicleType) bool {
	return s.VehicleType == VehicleAny || s.VehicleType == v
}

// Clone returns a deep copy of the slot
func (s *ParkingSlot) Clone() *ParkingSlot {
	if s == nil {
		return nil
	}
	c := *s
	if s.CurrentBookingID != nil {
		id := *s.CurrentBookingID
		c.CurrentBookingID = &id
	}
	return &c
}

// SlotFilter filter for slot listings
type SlotFilter struct {
	Location        *Location    // nil - all locations
	VehicleType     *VehicleType // nil - all vehicle types
	OnlyOperational bool         // active and operational slots only
}

// Matches checks the slot against the filter
func (f SlotFilter) Matches(s *ParkingSlot) bool {
	if f.Location != nil && s.Location != *f.Location {
		return false
	}
	if f.VehicleType != nil && !s.AcceptsVehicle(*f.VehicleType) {
		return false
	}
	if f.OnlyOperational && !(s.IsActive && s.IsOperational()) {
		return false
	}
	return true
}
