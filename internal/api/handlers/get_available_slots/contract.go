package get_available_slots

import (
	"context"

	findAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/find_available_slots"
)

type FindAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *findAvailableSlots.Request) (*findAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
