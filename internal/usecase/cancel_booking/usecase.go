package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	allocator    Allocator
	notifier     EventNotifier
	txManager    TransactionManager
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	allocator Allocator,
	notifier EventNotifier,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		allocator:    allocator,
		notifier:     notifier,
		txManager:    txManager,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет бронирование и освобождает слот в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%s by user=%d, admin=%t", req.BookingID, req.CallerID, req.IsAdmin)

	now := uc.timeProvider.Now()
	reason := cancellationReason(req)

	var result *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем слот и читаем актуальное бронирование
		booking, _, err := uc.allocator.LockBooking(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
				return fmt.Errorf("%w: booking %s", ErrNotFound, req.BookingID)
			}
			uc.logger.Error("CancelBooking: failed to lock booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrStorageUnavailable, err)
		}

		// 2. Проверяем предусловия
		if err := checkCancellable(booking, req, now, uc.policy.CancelCutoff); err != nil {
			uc.logger.Warn("CancelBooking: %v", err)
			return err
		}

		// 3. Отменяем
		booking.Status = domain.StatusCancelled
		booking.CancellationReason = ptr.Ptr(reason)
		booking.CancelledAt = ptr.Ptr(now)
		booking.CancelledBy = ptr.Ptr(req.CallerID)

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrStorageUnavailable, err)
		}

		// 4. Освобождаем слот или передаем его следующему бронированию
		if _, err := uc.allocator.Reconcile(txCtx, booking.SlotID); err != nil {
			uc.logger.Error("CancelBooking: failed to release slot id=%s: %v", booking.SlotID, err)
			return fmt.Errorf("%w: failed to release slot: %w", ErrStorageUnavailable, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%s, reason=%q", result.ID, reason)

	uc.notifier.Notify(ctx, domain.NewBookingEvent(domain.EventBookingCancelled, result, reason, now))

	return &Response{
		ID:                 result.ID,
		UserID:             result.UserID,
		SlotID:             result.SlotID,
		StartTime:          result.StartTime,
		EndTime:            result.EndTime,
		Status:             result.Status,
		CancellationReason: reason,
		CancelledAt:        now,
		CancelledBy:        req.CallerID,
	}, nil
}
