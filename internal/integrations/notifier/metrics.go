package notifier

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// MetricsSink считает события в prometheus
type MetricsSink struct {
	counter EventCounter
}

func NewMetricsSink(counter EventCounter) *MetricsSink {
	return &MetricsSink{counter: counter}
}

func (s *MetricsSink) Name() string {
	return "metrics"
}

func (s *MetricsSink) Publish(_ context.Context, event domain.Event) error {
	s.counter.IncBookingEvent(string(event.Type))
	return nil
}
