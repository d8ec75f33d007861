package run_sweep

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/usecase/sweep_expired"
)

type SweepUseCase interface {
	Execute(ctx context.Context, req *sweep_expired.Request) (*sweep_expired.Response, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
