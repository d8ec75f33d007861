package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const defaultQueueSize = 256

// Dispatcher рассылает события по получателям в фоне.
// Notify не блокирует вызывающего: события складываются в очередь и
// отправляются одной горутиной в порядке поступления
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	log     Logger

	queue chan domain.Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher создает диспетчер и запускает горутину отправки.
// timeout ограничивает отправку одного события одному получателю
func NewDispatcher(timeout time.Duration, queueSize int, log Logger, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	d := &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		log:     log,
		queue:   make(chan domain.Event, queueSize),
		done:    make(chan struct{}),
	}

	go d.run()

	return d
}

// Notify ставит событие в очередь. При переполненной очереди событие отбрасывается
func (d *Dispatcher) Notify(_ context.Context, event domain.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Notifier: dispatcher closed, dropping event %s for slot %s", event.Type, event.SlotID)
		return
	}

	select {
	case d.queue <- event:
	default:
		d.log.Warn("Notifier: queue is full, dropping event %s for slot %s", event.Type, event.SlotID)
	}
}

// Close перестает принимать события и дожидается отправки уже поставленных в очередь
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.queue {
		for _, sink := range d.sinks {
			d.deliver(sink, event)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, event domain.Event) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := sink.Publish(ctx, event); err != nil {
		d.log.Error("Notifier: sink %s failed to publish %s: %v", sink.Name(), event.Type, err)
	}
}
