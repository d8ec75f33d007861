package expiry

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/usecase/sweep_expired"
)

// Sweeper проход по просроченным бронированиям
type Sweeper interface {
	Execute(ctx context.Context, req *sweep_expired.Request) (*sweep_expired.Response, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
