package notifier

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// LogSink пишет события в лог; используется, когда Redis выключен
type LogSink struct {
	log Logger
}

func NewLogSink(log Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string {
	return "log"
}

func (s *LogSink) Publish(_ context.Context, event domain.Event) error {
	if event.BookingID != nil {
		s.log.Info("Event %s: booking=%s slot=%s user=%d status=%s", event.Type, *event.BookingID, event.SlotID, event.UserID, event.Status)
		return nil
	}
	s.log.Info("Event %s: slot=%s %s", event.Type, event.SlotID, event.Message)
	return nil
}
