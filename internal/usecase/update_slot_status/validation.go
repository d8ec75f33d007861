package update_slot_status

import (
	"fmt"

	"github.com/google/uuid"
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.SlotID == uuid.Nil {
		return fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}
	if req.CallerID <= 0 {
		return fmt.Errorf("%w: caller id must be positive", ErrInvalidInput)
	}
	if req.MaintenanceStatus == nil && req.IsActive == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.MaintenanceStatus != nil && !req.MaintenanceStatus.IsValid() {
		return fmt.Errorf("%w: unknown maintenance status %q", ErrInvalidInput, *req.MaintenanceStatus)
	}
	return nil
}
