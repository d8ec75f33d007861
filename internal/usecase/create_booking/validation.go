package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest проверяет форму запроса до проверок бизнес-правил
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	if req.SlotID == uuid.Nil {
		return fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.VehicleNumber) == "" {
		return fmt.Errorf("%w: vehicle number is required", ErrInvalidInput)
	}
	if !req.VehicleType.IsValidForBooking() {
		return fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, req.VehicleType)
	}
	if !req.Location.IsValid() {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, req.Location)
	}
	return nil
}

// validateWindow проверяет окно бронирования по порядку:
// конец после начала, начало строго позже now, горизонт бронирования, максимальная длительность
func validateWindow(start, end, now time.Time, policy domain.BookingPolicy) error {
	if !end.After(start) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidWindow, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	if !start.After(now) {
		return fmt.Errorf("%w: start=%s", ErrWindowInPast, start.Format(time.RFC3339))
	}
	if start.After(now.Add(policy.MaxAdvance)) {
		return fmt.Errorf("%w: start=%s is beyond %s", ErrTooFarInAdvance, start.Format(time.RFC3339), policy.MaxAdvance)
	}
	if end.Sub(start) > policy.MaxDuration {
		return fmt.Errorf("%w: %s exceeds %s", ErrDurationTooLong, end.Sub(start), policy.MaxDuration)
	}
	return nil
}

// validateSlot проверяет, что слот включен, работает и подходит по транспорту и роли
func validateSlot(slot *domain.ParkingSlot, role domain.Role, vehicleType domain.VehicleType) error {
	if !slot.IsActive {
		return fmt.Errorf("%w: slot %s is inactive", ErrSlotUnsuitable, slot.SlotNumber)
	}
	if !slot.IsOperational() {
		return fmt.Errorf("%w: slot %s is %s", ErrSlotUnsuitable, slot.SlotNumber, slot.MaintenanceStatus)
	}
	if !slot.AcceptsVehicle(vehicleType) {
		return fmt.Errorf("%w: slot %s is for %s", ErrSlotUnsuitable, slot.SlotNumber, slot.VehicleType)
	}
	if !role.CanUse(slot.ReservedFor) {
		return fmt.Errorf("%w: slot %s is reserved for %s", ErrSlotUnsuitable, slot.SlotNumber, slot.ReservedFor)
	}
	return nil
}

// isVehicleRegistered ищет транспорт среди зарегистрированных по номеру и типу; номер сравнивается без учета регистра
func isVehicleRegistered(vehicles []domain.Vehicle, number string, vehicleType domain.VehicleType) bool {
	for _, v := range vehicles {
		if strings.EqualFold(strings.TrimSpace(v.Number), number) && v.Type == vehicleType {
			return true
		}
	}
	return false
}

// normalizeVehicleNumber приводит номер к верхнему регистру без пробелов по краям
func normalizeVehicleNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}
