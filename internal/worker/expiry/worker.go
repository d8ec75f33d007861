package expiry

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/usecase/sweep_expired"
)

// Worker периодически закрывает просроченные бронирования
type Worker struct {
	sweeper      Sweeper
	interval     time.Duration
	timeout      time.Duration
	timeProvider TimeProvider
	logger       Logger

	wg sync.WaitGroup
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

// NewWorker создает воркер. timeout ограничивает один проход
func NewWorker(sweeper Sweeper, interval, timeout time.Duration, logger Logger) *Worker {
	return &Worker{
		sweeper:      sweeper,
		interval:     interval,
		timeout:      timeout,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Start запускает проходы по тикеру до отмены ctx
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
}

// Wait дожидается завершения горутины воркера после отмены контекста
func (w *Worker) Wait() {
	w.wg.Wait()
}

// RunOnce выполняет один проход
func (w *Worker) RunOnce(ctx context.Context) *sweep_expired.Response {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	resp, err := w.sweeper.Execute(ctx, &sweep_expired.Request{Now: w.timeProvider.Now()})
	if err != nil {
		w.logger.Error("ExpiryWorker: sweep failed: %v", err)
		return nil
	}

	if resp.Transitioned > 0 || resp.Failed > 0 {
		w.logger.Info("ExpiryWorker: closed %d bookings (expired=%d, no-show=%d), failed=%d",
			resp.Transitioned, resp.Expired, resp.NoShow, resp.Failed)
	}

	return resp
}
