package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	allocator    Allocator
	directory    UserDirectory
	notifier     EventNotifier
	txManager    TransactionManager
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	allocator Allocator,
	directory UserDirectory,
	notifier EventNotifier,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		allocator:    allocator,
		directory:    directory,
		notifier:     notifier,
		txManager:    txManager,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверки идут в фиксированном порядке, каждая со своим видом ошибки.
// Проверка пересечений и запись выполняются в сериализуемой транзакции под блокировкой слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: user=%d, slot=%s, vehicle=%s, window=[%s, %s)",
		req.UserID, req.SlotID, req.VehicleNumber, req.StartTime.Format(domain.DateTimeFormat), req.EndTime.Format(domain.DateTimeFormat))

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем окно бронирования
	if err := validateWindow(req.StartTime, req.EndTime, now, uc.policy); err != nil {
		uc.logger.Warn("CreateBooking: window rejected for user=%d: %v", req.UserID, err)
		return nil, err
	}

	// 4. Получаем роль и автомобили пользователя до транзакции
	role, err := uc.directory.GetRole(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get role of user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user role: %w", ErrStorageUnavailable, err)
	}

	vehicles, err := uc.directory.GetRegisteredVehicles(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get vehicles of user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user vehicles: %w", ErrStorageUnavailable, err)
	}

	vehicleNumber := normalizeVehicleNumber(req.VehicleNumber)

	var (
		result *domain.Booking
		slot   *domain.ParkingSlot
	)

	// 5. Выполняем проверки слота и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем слот: все изменения его бронирований идут строго по очереди
		slot, err = uc.slotRepo.GetByIDForUpdate(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%s not found", req.SlotID)
				return fmt.Errorf("%w: slot %s not found", ErrSlotUnsuitable, req.SlotID)
			}
			uc.logger.Error("CreateBooking: failed to lock slot id=%s: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrStorageUnavailable, err)
		}

		// 5.2. Слот включен, работает и подходит пользователю
		if err := validateSlot(slot, role, req.VehicleType); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		// 5.3. Слот находится в запрошенной локации
		if slot.Location != req.Location {
			uc.logger.Warn("CreateBooking: slot %s is at %s, requested %s", slot.SlotNumber, slot.Location, req.Location)
			return fmt.Errorf("%w: slot %s is at %s", ErrLocationMismatch, slot.SlotNumber, slot.Location)
		}

		// 5.4. Нет пересечений с активными бронированиями слота
		overlapping, err := uc.bookingRepo.FindActiveOverlapping(txCtx, slot.ID, req.StartTime, req.EndTime, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %w", ErrStorageUnavailable, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot %s conflicts with booking id=%s", slot.SlotNumber, overlapping[0].ID)
			return fmt.Errorf("%w: slot %s", ErrSlotConflict, slot.SlotNumber)
		}

		// 5.5. Лимит активных бронирований пользователя
		activeCount, err := uc.bookingRepo.CountActiveByUser(txCtx, req.UserID, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count active bookings of user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to count active bookings: %w", ErrStorageUnavailable, err)
		}
		if activeCount >= uc.policy.MaxActiveBookings {
			uc.logger.Warn("CreateBooking: user=%d already has %d/%d active bookings",
				req.UserID, activeCount, uc.policy.MaxActiveBookings)
			return fmt.Errorf("%w: %d active bookings", ErrTooManyActiveBookings, activeCount)
		}

		// 5.6. Автомобиль зарегистрирован на пользователя
		if !isVehicleRegistered(vehicles, vehicleNumber, req.VehicleType) {
			uc.logger.Warn("CreateBooking: vehicle %s is not registered to user=%d", vehicleNumber, req.UserID)
			return fmt.Errorf("%w: %s", ErrVehicleNotRegistered, vehicleNumber)
		}

		// 5.7. Создаем бронирование с вычисленной длительностью и суммой
		hours := domain.BillableHours(req.StartTime, req.EndTime)
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:        req.UserID,
			SlotID:        slot.ID,
			Vehicle:       domain.Vehicle{Number: vehicleNumber, Type: req.VehicleType},
			Location:      slot.Location,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			DurationHours: hours,
			Status:        domain.StatusActive,
			TotalAmount:   domain.Amount(hours, slot.HourlyRate),
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingOverlap) {
				uc.logger.Warn("CreateBooking: storage rejected overlapping booking on slot %s", slot.SlotNumber)
				return fmt.Errorf("%w: slot %s", ErrSlotConflict, slot.SlotNumber)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrStorageUnavailable, err)
		}

		// 5.8. Закрепляем слот
		if _, err := uc.allocator.Reconcile(txCtx, slot.ID); err != nil {
			uc.logger.Error("CreateBooking: failed to claim slot %s: %v", slot.SlotNumber, err)
			return fmt.Errorf("%w: failed to claim slot: %w", ErrStorageUnavailable, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s on slot %s, amount=%.2f",
		result.ID, slot.SlotNumber, result.TotalAmount)

	// 6. Уведомляем после коммита
	uc.notifier.Notify(ctx, domain.NewBookingEvent(domain.EventBookingCreated, result,
		fmt.Sprintf("Booking confirmed for slot %s", slot.SlotNumber), now))

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		SlotID:        result.SlotID,
		SlotNumber:    slot.SlotNumber,
		Location:      result.Location,
		VehicleNumber: result.Vehicle.Number,
		VehicleType:   result.Vehicle.Type,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		DurationHours: result.DurationHours,
		HourlyRate:    slot.HourlyRate,
		TotalAmount:   result.TotalAmount,
		Status:        result.Status,
		CreatedAt:     result.CreatedAt,
	}, nil
}
