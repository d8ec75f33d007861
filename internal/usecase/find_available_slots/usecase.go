package find_available_slots

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// maxReadAttempts число попыток чтения при ошибках хранилища
const maxReadAttempts = 3

// UseCase use case для поиска свободных слотов. Только чтение, безопасен параллельно с любыми операциями
type UseCase struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute возвращает включенные, работающие и подходящие роли слоты.
// Если задано окно, исключаются слоты с активной бронью, пересекающей окно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация фильтров
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем слоты и занятость, повторяя чтение при сбоях
	var (
		slots []*domain.ParkingSlot
		busy  map[uuid.UUID]struct{}
		err   error
	)
	for attempt := 1; attempt <= maxReadAttempts; attempt++ {
		slots, busy, err = uc.read(ctx, req)
		if err == nil {
			break
		}
		uc.logger.Warn("FindAvailableSlots: read attempt %d/%d failed: %v", attempt, maxReadAttempts, err)
		if ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		uc.logger.Error("FindAvailableSlots: failed to read slots: %v", err)
		return nil, fmt.Errorf("%w: failed to read slots: %w", ErrStorageUnavailable, err)
	}

	// 3. Отбираем подходящие слоты
	result := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if !suitable(slot, req.Role) {
			continue
		}
		if _, taken := busy[slot.ID]; taken {
			continue
		}
		result = append(result, toSlot(slot, req))
	}

	uc.logger.Info("FindAvailableSlots: found %d slots for role=%s", len(result), req.Role)
	return &Response{Slots: result, Total: len(result)}, nil
}

func (uc *UseCase) read(ctx context.Context, req *Request) ([]*domain.ParkingSlot, map[uuid.UUID]struct{}, error) {
	var (
		slots []*domain.ParkingSlot
		busy  = make(map[uuid.UUID]struct{})
	)
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		slots, err = uc.slotRepo.List(txCtx, domain.SlotFilter{
			Location:        req.Location,
			VehicleType:     req.VehicleType,
			OnlyOperational: true,
		})
		if err != nil {
			return fmt.Errorf("list slots: %w", err)
		}

		if req.StartTime == nil {
			return nil
		}

		ids, err := uc.bookingRepo.GetBusySlotIDs(txCtx, *req.StartTime, *req.EndTime)
		if err != nil {
			return fmt.Errorf("get busy slots: %w", err)
		}
		for _, id := range ids {
			busy[id] = struct{}{}
		}
		return nil
	})
	return slots, busy, err
}

func toSlot(slot *domain.ParkingSlot, req *Request) Slot {
	s := Slot{
		ID:          slot.ID,
		SlotNumber:  slot.SlotNumber,
		Location:    slot.Location,
		VehicleType: slot.VehicleType,
		ReservedFor: slot.ReservedFor,
		HourlyRate:  slot.HourlyRate,
		IsAvailable: slot.IsAvailable,
	}
	if req.StartTime != nil {
		s.EstimatedAmount = ptr.Ptr(domain.Amount(domain.BillableHours(*req.StartTime, *req.EndTime), slot.HourlyRate))
	}
	return s
}
