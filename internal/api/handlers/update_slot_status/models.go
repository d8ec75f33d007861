package update_slot_status

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
	updateSlotStatus "github.com/m04kA/SMC-ParkingService/internal/usecase/update_slot_status"
)

// UpdateSlotStatusRequest HTTP request model; отсутствующее поле не меняется
type UpdateSlotStatusRequest struct {
	MaintenanceStatus *string `json:"maintenanceStatus,omitempty"`
	IsActive          *bool   `json:"isActive,omitempty"`
}

// UpdateSlotStatusResponse HTTP response model
type UpdateSlotStatusResponse struct {
	Slot              *models.SlotResponse `json:"slot"`
	CancelledBookings int                  `json:"cancelledBookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateSlotStatusRequest) ToUseCaseRequest(slotID uuid.UUID, callerID int64) *updateSlotStatus.Request {
	req := &updateSlotStatus.Request{
		SlotID:   slotID,
		CallerID: callerID,
		IsActive: r.IsActive,
	}
	if r.MaintenanceStatus != nil {
		status := domain.MaintenanceStatus(*r.MaintenanceStatus)
		req.MaintenanceStatus = &status
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateSlotStatus.Response) *UpdateSlotStatusResponse {
	return &UpdateSlotStatusResponse{
		Slot:              models.FromDomainSlot(resp.Slot),
		CancelledBookings: resp.CancelledBookings,
	}
}
