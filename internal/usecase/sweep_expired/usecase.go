package sweep_expired

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// UseCase use case для закрытия просроченных бронирований
type UseCase struct {
	bookingRepo BookingRepository
	allocator   Allocator
	notifier    EventNotifier
	txManager   TransactionManager
	unattended  domain.BookingStatus
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// unattended - статус для брони без отметки о прибытии: no-show или expired
func NewUseCase(
	bookingRepo BookingRepository,
	allocator Allocator,
	notifier EventNotifier,
	txManager TransactionManager,
	unattended domain.BookingStatus,
	logger Logger,
) (*UseCase, error) {
	if err := ValidateUnattendedStatus(unattended); err != nil {
		return nil, err
	}

	return &UseCase{
		bookingRepo: bookingRepo,
		allocator:   allocator,
		notifier:    notifier,
		txManager:   txManager,
		unattended:  unattended,
		logger:      logger,
	}, nil
}

// Execute закрывает активные брони, окно которых закончилось к req.Now и по которым нет отметки об уходе.
// Каждая бронь закрывается в своей транзакции под блокировкой слота; повторный проход ничего не меняет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Выбираем кандидатов
	candidates, err := uc.bookingRepo.ListOverdue(ctx, req.Now)
	if err != nil {
		uc.logger.Error("SweepExpired: failed to list overdue bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list overdue bookings: %w", ErrStorageUnavailable, err)
	}

	resp := &Response{}
	if len(candidates) == 0 {
		return resp, nil
	}

	uc.logger.Info("SweepExpired: %d overdue bookings at %s", len(candidates), req.Now.Format(domain.DateTimeFormat))

	// 2. Закрываем каждую бронь отдельно: ошибка одной не мешает остальным
	for _, candidate := range candidates {
		closed, err := uc.close(ctx, candidate, req)
		if err != nil {
			uc.logger.Error("SweepExpired: failed to close booking id=%s: %v", candidate.ID, err)
			resp.Failed++
			continue
		}
		if closed == nil {
			continue
		}

		resp.Transitioned++
		eventType := domain.EventBookingExpired
		if closed.Status == domain.StatusNoShow {
			resp.NoShow++
			eventType = domain.EventBookingNoShow
		} else {
			resp.Expired++
		}

		uc.notifier.Notify(ctx, domain.NewBookingEvent(eventType, closed,
			fmt.Sprintf("Booking closed as %s", closed.Status), req.Now))
	}

	uc.logger.Info("SweepExpired: closed %d bookings (expired=%d, no-show=%d, failed=%d)",
		resp.Transitioned, resp.Expired, resp.NoShow, resp.Failed)
	return resp, nil
}

// close закрывает одну бронь; nil без ошибки - бронь уже закрыта другим запросом
func (uc *UseCase) close(ctx context.Context, candidate *domain.Booking, req *Request) (*domain.Booking, error) {
	var closed *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, _, err := uc.allocator.LockBooking(txCtx, candidate.ID)
		if err != nil {
			return err
		}

		if !isOverdue(booking, req) {
			uc.logger.Info("SweepExpired: booking id=%s is already %s, skipping", booking.ID, booking.Status)
			return nil
		}

		booking.Status = closingStatus(booking, uc.unattended)
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		if _, err := uc.allocator.Reconcile(txCtx, booking.SlotID); err != nil {
			return fmt.Errorf("release slot: %w", err)
		}

		closed = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}
