package allocation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Service согласует закрепление слота с его активными бронированиями.
// Слот закреплен за активным бронированием с самым ранним началом; нет активных - слот свободен.
// Вызывается внутри транзакции после блокировки слота и изменения его бронирований
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
}

// NewService создает новый экземпляр сервиса
func NewService(bookingRepo BookingRepository, slotRepo SlotRepository) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
	}
}

// Reconcile выполняет claim или release слота и возвращает ID бронирования-держателя (nil, если слот свободен)
func (s *Service) Reconcile(ctx context.Context, slotID uuid.UUID) (*uuid.UUID, error) {
	active, err := s.bookingRepo.GetActiveBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("allocation: get active bookings of slot %s: %w", slotID, err)
	}

	if len(active) == 0 {
		if err := s.slotRepo.Release(ctx, slotID); err != nil {
			return nil, fmt.Errorf("allocation: release slot %s: %w", slotID, err)
		}
		return nil, nil
	}

	holder := active[0].ID
	if err := s.slotRepo.Claim(ctx, slotID, holder); err != nil {
		return nil, fmt.Errorf("allocation: claim slot %s: %w", slotID, err)
	}
	return &holder, nil
}

// LockBooking блокирует слот бронирования и перечитывает бронирование под блокировкой.
// Все изменения бронирований слота идут под этой блокировкой, поэтому повторное чтение актуально.
// Ошибки репозиториев возвращаются обернутыми, сравнивать их нужно через errors.Is
func (s *Service) LockBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, *domain.ParkingSlot, error) {
	// 1. Узнаем слот бронирования
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("allocation: get booking %s: %w", bookingID, err)
	}

	// 2. Блокируем слот
	slot, err := s.slotRepo.GetByIDForUpdate(ctx, booking.SlotID)
	if err != nil {
		return nil, nil, fmt.Errorf("allocation: lock slot %s: %w", booking.SlotID, err)
	}

	// 3. Перечитываем бронирование: до блокировки его мог изменить другой запрос
	booking, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("allocation: reload booking %s: %w", bookingID, err)
	}

	return booking, slot, nil
}
