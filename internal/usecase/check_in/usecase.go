package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase use case для отметки о прибытии на парковку
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

// Execute отмечает прибытие. Слот не меняется: он уже закреплен за бронями
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckIn: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckIn: booking id=%s by user=%d", req.BookingID, req.CallerID)

	now := uc.timeProvider.Now()

	var result *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, _, err := uc.allocator.LockBooking(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckIn: booking id=%s not found", req.BookingID)
				return fmt.Errorf("%w: booking %s", ErrNotFound, req.BookingID)
			}
			uc.logger.Error("CheckIn: failed to lock booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrStorageUnavailable, err)
		}

		if err := checkArrival(booking, req, now, uc.policy.CheckInGrace); err != nil {
			uc.logger.Warn("CheckIn: %v", err)
			return err
		}

		booking.CheckInTime = ptr.Ptr(now)
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("CheckIn: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrStorageUnavailable, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckIn: successfully checked in booking id=%s", result.ID)

	uc.notifier.Notify(ctx, domain.NewBookingEvent(domain.EventBookingCheckedIn, result, "Checked in", now))

	return &Response{
		BookingID:   result.ID,
		SlotID:      result.SlotID,
		CheckInTime: now,
	}, nil
}
