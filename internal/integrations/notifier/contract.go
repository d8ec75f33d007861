package notifier

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Sink получатель событий о переходах жизненного цикла
type Sink interface {
	Name() string
	Publish(ctx context.Context, event domain.Event) error
}

// EventCounter счетчик событий в метриках
type EventCounter interface {
	IncBookingEvent(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
