package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

// Service сервис для ведения справочника слотов
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Create создает слот. Номер слота приводится к верхнему регистру и должен быть уникален
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot number=%s at %s", req.SlotNumber, req.Location)

	// 1. Валидируем и заполняем значения по умолчанию
	slot, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Сохраняем
	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNumberTaken) {
			s.logger.Warn("Create: slot number=%s already exists", slot.SlotNumber)
			return nil, fmt.Errorf("%w: slot number %s already exists", ErrInvalidInput, slot.SlotNumber)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrStorageUnavailable, err)
	}

	s.logger.Info("Create: successfully created slot id=%s number=%s", created.ID, created.SlotNumber)
	return models.FromDomainSlot(created), nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%s not found", id)
			return nil, fmt.Errorf("%w: slot %s", ErrNotFound, id)
		}
		s.logger.Error("GetByID: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrStorageUnavailable, err)
	}
	return models.FromDomainSlot(slot), nil
}

// List получает слоты по фильтру, отсортированные по номеру
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrStorageUnavailable, err)
	}

	s.logger.Info("List: fetched %d slots", len(slots))
	return models.FromDomainSlotList(slots), nil
}

// Delete удаляет слот. Слот с закрепленным бронированием удалить нельзя
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting slot id=%s", id)

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Delete: slot id=%s not found", id)
			return fmt.Errorf("%w: slot %s", ErrNotFound, id)
		case errors.Is(err, slotRepo.ErrSlotOccupied):
			s.logger.Warn("Delete: slot id=%s has a current booking", id)
			return fmt.Errorf("%w: slot %s", ErrSlotOccupied, id)
		}
		s.logger.Error("Delete: repository error for slot id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrStorageUnavailable, err)
	}

	s.logger.Info("Delete: successfully deleted slot id=%s", id)
	return nil
}

// Seed создает слоты P001..PNNN, распределяя их по локациям по кругу.
// Каждый пятый слот закреплен за преподавателями, каждый десятый - за людьми с инвалидностью,
// каждый седьмой - для мотоциклов. Уже существующие номера пропускаются
func (s *Service) Seed(ctx context.Context, count int) (int, error) {
	created := 0
	for i := 1; i <= count; i++ {
		slot := seedSlot(i)

		if _, err := s.slotRepo.Create(ctx, slot); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNumberTaken) {
				continue
			}
			s.logger.Error("Seed: failed to create slot %s: %v", slot.SlotNumber, err)
			return created, fmt.Errorf("%w: Seed - repository error: %w", ErrStorageUnavailable, err)
		}
		created++
	}

	s.logger.Info("Seed: created %d of %d slots", created, count)
	return created, nil
}

func seedSlot(i int) *domain.ParkingSlot {
	slot := &domain.ParkingSlot{
		SlotNumber:        fmt.Sprintf("P%03d", i),
		Location:          domain.Locations[(i-1)%len(domain.Locations)],
		VehicleType:       domain.VehicleCar,
		ReservedFor:       domain.ReservedGeneral,
		HourlyRate:        domain.DefaultHourlyRate,
		IsActive:          true,
		MaintenanceStatus: domain.MaintenanceOperational,
	}

	switch {
	case i%10 == 0:
		slot.ReservedFor = domain.ReservedDisabled
	case i%5 == 0:
		slot.ReservedFor = domain.ReservedFaculty
	}
	if i%7 == 0 {
		slot.VehicleType = domain.VehicleMotorcycle
	}
	return slot
}
