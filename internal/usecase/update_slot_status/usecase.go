package update_slot_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase use case для изменения рабочего состояния слота
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	allocator    Allocator
	notifier     EventNotifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	allocator Allocator,
	notifier EventNotifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		allocator:    allocator,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute меняет статус обслуживания и/или активность слота.
// Если слот перестает принимать брони, все его активные брони отменяются и слот освобождается в той же транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateSlotStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateSlotStatus: slot id=%s by user=%d", req.SlotID, req.CallerID)

	now := uc.timeProvider.Now()

	var (
		updated   *domain.ParkingSlot
		cancelled []*domain.Booking
	)
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cancelled = nil

		// 1. Блокируем слот
		slot, err := uc.slotRepo.GetByIDForUpdate(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("UpdateSlotStatus: slot id=%s not found", req.SlotID)
				return fmt.Errorf("%w: slot %s", ErrNotFound, req.SlotID)
			}
			uc.logger.Error("UpdateSlotStatus: failed to lock slot id=%s: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrStorageUnavailable, err)
		}

		// 2. Вычисляем новое состояние
		status := slot.MaintenanceStatus
		if req.MaintenanceStatus != nil {
			status = *req.MaintenanceStatus
		}
		active := slot.IsActive
		if req.IsActive != nil {
			active = *req.IsActive
		}

		// 3. Слот перестает принимать брони - отменяем активные
		if !active || status != domain.MaintenanceOperational {
			bookings, err := uc.bookingRepo.GetActiveBySlot(txCtx, slot.ID)
			if err != nil {
				uc.logger.Error("UpdateSlotStatus: failed to get active bookings of slot %s: %v", slot.SlotNumber, err)
				return fmt.Errorf("%w: failed to get active bookings: %w", ErrStorageUnavailable, err)
			}

			for _, booking := range bookings {
				booking.Status = domain.StatusCancelled
				booking.CancellationReason = ptr.Ptr(domain.ReasonSlotMaintenance)
				booking.CancelledAt = ptr.Ptr(now)
				booking.CancelledBy = ptr.Ptr(req.CallerID)

				if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
					uc.logger.Error("UpdateSlotStatus: failed to cancel booking id=%s: %v", booking.ID, err)
					return fmt.Errorf("%w: failed to cancel booking: %w", ErrStorageUnavailable, err)
				}
				cancelled = append(cancelled, booking)
			}
		}

		// 4. Сохраняем состояние и согласуем закрепление
		if _, err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, status, active); err != nil {
			uc.logger.Error("UpdateSlotStatus: failed to update slot %s: %v", slot.SlotNumber, err)
			return fmt.Errorf("%w: failed to update slot: %w", ErrStorageUnavailable, err)
		}

		if _, err := uc.allocator.Reconcile(txCtx, slot.ID); err != nil {
			uc.logger.Error("UpdateSlotStatus: failed to release slot %s: %v", slot.SlotNumber, err)
			return fmt.Errorf("%w: failed to release slot: %w", ErrStorageUnavailable, err)
		}

		updated, err = uc.slotRepo.GetByIDForUpdate(txCtx, slot.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload slot: %w", ErrStorageUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateSlotStatus: slot %s is now %s, active=%t, cancelled %d bookings",
		updated.SlotNumber, updated.MaintenanceStatus, updated.IsActive, len(cancelled))

	for _, booking := range cancelled {
		uc.notifier.Notify(ctx, domain.NewBookingEvent(domain.EventBookingCancelled, booking, domain.ReasonSlotMaintenance, now))
	}
	uc.notifier.Notify(ctx, domain.NewSlotEvent(domain.EventSlotStatusChanged, updated,
		fmt.Sprintf("Slot %s is %s, active=%t", updated.SlotNumber, updated.MaintenanceStatus, updated.IsActive), now))

	return &Response{
		Slot:              updated,
		CancelledBookings: len(cancelled),
	}, nil
}
