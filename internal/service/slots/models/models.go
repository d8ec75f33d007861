package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	SlotNumber        string   `json:"slotNumber"`
	Location          string   `json:"location"`
	VehicleType       string   `json:"vehicleType"`                 // car, motorcycle, bicycle, any
	ReservedFor       string   `json:"reservedFor,omitempty"`       // пусто = general
	HourlyRate        *float64 `json:"hourlyRate,omitempty"`        // nil = тариф по умолчанию
	IsActive          *bool    `json:"isActive,omitempty"`          // nil = true
	MaintenanceStatus string   `json:"maintenanceStatus,omitempty"` // пусто = operational
}

// ToDomain проверяет запрос и собирает доменный слот
func (r *CreateSlotRequest) ToDomain() (*domain.ParkingSlot, error) {
	slot := &domain.ParkingSlot{
		SlotNumber:        strings.ToUpper(strings.TrimSpace(r.SlotNumber)),
		Location:          domain.Location(r.Location),
		VehicleType:       domain.VehicleType(r.VehicleType),
		ReservedFor:       domain.ReservedGeneral,
		HourlyRate:        domain.DefaultHourlyRate,
		IsActive:          true,
		MaintenanceStatus: domain.MaintenanceOperational,
	}
	if r.ReservedFor != "" {
		slot.ReservedFor = domain.ReservedFor(r.ReservedFor)
	}
	if r.HourlyRate != nil {
		slot.HourlyRate = *r.HourlyRate
	}
	if r.IsActive != nil {
		slot.IsActive = *r.IsActive
	}
	if r.MaintenanceStatus != "" {
		slot.MaintenanceStatus = domain.MaintenanceStatus(r.MaintenanceStatus)
	}

	switch {
	case slot.SlotNumber == "":
		return nil, fmt.Errorf("slot number is required")
	case !slot.Location.IsValid():
		return nil, fmt.Errorf("unknown location %q", r.Location)
	case !slot.VehicleType.IsValidForSlot():
		return nil, fmt.Errorf("unknown vehicle type %q", r.VehicleType)
	case !slot.ReservedFor.IsValid():
		return nil, fmt.Errorf("unknown category %q", r.ReservedFor)
	case !slot.MaintenanceStatus.IsValid():
		return nil, fmt.Errorf("unknown maintenance status %q", r.MaintenanceStatus)
	case slot.HourlyRate <= 0:
		return nil, fmt.Errorf("hourly rate must be positive")
	}
	return slot, nil
}

// ListSlotsRequest фильтры списка слотов
type ListSlotsRequest struct {
	Location        *string `json:"location,omitempty"`
	VehicleType     *string `json:"vehicleType,omitempty"`
	OnlyOperational bool    `json:"onlyOperational,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotFilter, error) {
	filter := domain.SlotFilter{OnlyOperational: r.OnlyOperational}
	if r.Location != nil {
		location := domain.Location(*r.Location)
		if !location.IsValid() {
			return filter, fmt.Errorf("unknown location %q", *r.Location)
		}
		filter.Location = &location
	}
	if r.VehicleType != nil {
		vehicleType := domain.VehicleType(*r.VehicleType)
		if !vehicleType.IsValidForBooking() {
			return filter, fmt.Errorf("unknown vehicle type %q", *r.VehicleType)
		}
		filter.VehicleType = &vehicleType
	}
	return filter, nil
}

// Response модели

// SlotResponse слот парковки
type SlotResponse struct {
	ID                uuid.UUID  `json:"id"`
	SlotNumber        string     `json:"slotNumber"`
	Location          string     `json:"location"`
	VehicleType       string     `json:"vehicleType"`
	ReservedFor       string     `json:"reservedFor"`
	HourlyRate        float64    `json:"hourlyRate"`
	IsActive          bool       `json:"isActive"`
	MaintenanceStatus string     `json:"maintenanceStatus"`
	CurrentBookingID  *uuid.UUID `json:"currentBookingId"`
	IsAvailable       bool       `json:"isAvailable"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDomainSlot конвертирует доменный слот в ответ
func FromDomainSlot(s *domain.ParkingSlot) *SlotResponse {
	return &SlotResponse{
		ID:                s.ID,
		SlotNumber:        s.SlotNumber,
		Location:          string(s.Location),
		VehicleType:       string(s.VehicleType),
		ReservedFor:       string(s.ReservedFor),
		HourlyRate:        s.HourlyRate,
		IsActive:          s.IsActive,
		MaintenanceStatus: string(s.MaintenanceStatus),
		CurrentBookingID:  s.CurrentBookingID,
		IsAvailable:       s.IsAvailable,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список доменных слотов в ответ
func FromDomainSlotList(slots []*domain.ParkingSlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
		Total: len(slots),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
