package extend_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

// UseCase use case для продления бронирования
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

// Execute продлевает активное бронирование на целое число часов.
// Новое окно [end, end+hours) не должно пересекаться с другими активными бронями слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExtendBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ExtendBooking: booking id=%s by user=%d, hours=%d", req.BookingID, req.CallerID, req.AdditionalHours)

	now := uc.timeProvider.Now()

	var (
		result    *domain.Booking
		extension domain.Extension
	)
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем слот и читаем актуальное бронирование
		booking, slot, err := uc.allocator.LockBooking(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ExtendBooking: booking id=%s not found", req.BookingID)
				return fmt.Errorf("%w: booking %s", ErrNotFound, req.BookingID)
			}
			uc.logger.Error("ExtendBooking: failed to lock booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrStorageUnavailable, err)
		}

		// 2. Проверяем предусловия
		if err := checkExtendable(booking, req, now, uc.policy); err != nil {
			uc.logger.Warn("ExtendBooking: %v", err)
			return err
		}

		// 3. Проверяем, что продление не заходит на следующую бронь
		newEnd := booking.EndTime.Add(time.Duration(req.AdditionalHours) * time.Hour)
		conflicts, err := uc.bookingRepo.FindActiveOverlapping(txCtx, booking.SlotID, booking.EndTime, newEnd, &booking.ID)
		if err != nil {
			uc.logger.Error("ExtendBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %w", ErrStorageUnavailable, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("ExtendBooking: extension of booking id=%s conflicts with booking id=%s", booking.ID, conflicts[0].ID)
			return fmt.Errorf("%w: slot is booked from %s", ErrExtensionConflict,
				conflicts[0].StartTime.Format(domain.DateTimeFormat))
		}

		// 4. Записываем продление
		extension = domain.Extension{
			OriginalEndTime: booking.EndTime,
			NewEndTime:      newEnd,
			AddedHours:      req.AdditionalHours,
			AddedAmount:     domain.Amount(req.AdditionalHours, slot.HourlyRate),
			ExtendedAt:      now,
		}
		booking.ExtensionHistory = append(booking.ExtensionHistory, extension)
		booking.EndTime = newEnd
		booking.DurationHours += req.AdditionalHours
		booking.TotalAmount = domain.RoundAmount(booking.TotalAmount + extension.AddedAmount)

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("ExtendBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrStorageUnavailable, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ExtendBooking: successfully extended booking id=%s until %s, amount=%.2f",
		result.ID, result.EndTime.Format(domain.DateTimeFormat), result.TotalAmount)

	uc.notifier.Notify(ctx, domain.NewBookingEvent(domain.EventBookingExtended, result,
		fmt.Sprintf("Booking extended by %d hours", req.AdditionalHours), now))

	return &Response{
		ID:             result.ID,
		UserID:         result.UserID,
		SlotID:         result.SlotID,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		DurationHours:  result.DurationHours,
		TotalAmount:    result.TotalAmount,
		Status:         result.Status,
		Extension:      extension,
		ExtensionCount: len(result.ExtensionHistory),
	}, nil
}
