package check_out

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase use case для отметки об уходе с парковки
type UseCase struct {
	bookingRepo  BookingRepository
	allocator    Allocator
	notifier     EventNotifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	allocator Allocator,
	notifier EventNotifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		allocator:    allocator,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute завершает бронирование и освобождает слот в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckOut: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckOut: booking id=%s by user=%d", req.BookingID, req.CallerID)

	now := uc.timeProvider.Now()

	var result *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем слот и читаем актуальное бронирование
		booking, _, err := uc.allocator.LockBooking(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckOut: booking id=%s not found", req.BookingID)
				return fmt.Errorf("%w: booking %s", ErrNotFound, req.BookingID)
			}
			uc.logger.Error("CheckOut: failed to lock booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrStorageUnavailable, err)
		}

		// 2. Проверяем предусловия
		if err := checkDeparture(booking, req); err != nil {
			uc.logger.Warn("CheckOut: %v", err)
			return err
		}

		// 3. Завершаем бронирование
		booking.CheckOutTime = ptr.Ptr(now)
		booking.Status = domain.StatusCompleted
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("CheckOut: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrStorageUnavailable, err)
		}

		// 4. Освобождаем слот или передаем его следующему бронированию
		if _, err := uc.allocator.Reconcile(txCtx, booking.SlotID); err != nil {
			uc.logger.Error("CheckOut: failed to release slot id=%s: %v", booking.SlotID, err)
			return fmt.Errorf("%w: failed to release slot: %w", ErrStorageUnavailable, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	actual := result.ActualDurationHours()
	uc.logger.Info("CheckOut: successfully completed booking id=%s, parked %.2f hours", result.ID, actual)

	uc.notifier.Notify(ctx, domain.NewBookingEvent(domain.EventBookingCompleted, result,
		fmt.Sprintf("Checked out after %.2f hours", actual), now))

	return &Response{
		BookingID:           result.ID,
		SlotID:              result.SlotID,
		CheckInTime:         ptr.Value(result.CheckInTime),
		CheckOutTime:        now,
		ActualDurationHours: actual,
		Status:              result.Status,
	}, nil
}
