package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

// SlotRepository репозиторий слотов в памяти, повторяющий контракт PostgreSQL-репозитория
type SlotRepository struct {
	store *Store
}

// Create создает новый свободный слот; номер слота уникален
func (r *SlotRepository) Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	for _, existing := range r.store.allSlots(ctx) {
		if existing.SlotNumber == slot.SlotNumber {
			return nil, fmt.Errorf("%w: %s", slotRepo.ErrSlotNumberTaken, slot.SlotNumber)
		}
	}

	now := r.store.now()
	slot.ID = uuid.New()
	slot.CurrentBookingID = nil
	slot.IsAvailable = slot.ComputeAvailability()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	r.store.putSlot(ctx, slot)
	return slot.Clone(), nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error) {
	slot, ok := r.store.getSlot(ctx, id)
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return slot, nil
}

// GetByIDForUpdate внутри транзакции берет блокировку слота до коммита или отката
func (r *SlotRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error) {
	if t := txFrom(ctx); t != nil {
		if err := r.store.lockSlot(ctx, t, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// List получает слоты по фильтру, отсортированные по номеру
func (r *SlotRepository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.ParkingSlot, error) {
	slots := make([]*domain.ParkingSlot, 0)
	for _, slot := range r.store.allSlots(ctx) {
		if filter.Matches(slot) {
			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].SlotNumber < slots[j].SlotNumber
	})
	return slots, nil
}

// Claim закрепляет слот за бронированием
func (r *SlotRepository) Claim(ctx context.Context, slotID, bookingID uuid.UUID) error {
	slot, ok := r.store.getSlot(ctx, slotID)
	if !ok {
		return slotRepo.ErrSlotNotFound
	}

	id := bookingID
	slot.CurrentBookingID = &id
	slot.IsAvailable = false
	slot.UpdatedAt = r.store.now()

	r.store.putSlot(ctx, slot)
	return nil
}

// Release освобождает слот с пересчетом доступности
func (r *SlotRepository) Release(ctx context.Context, slotID uuid.UUID) error {
	slot, ok := r.store.getSlot(ctx, slotID)
	if !ok {
		return slotRepo.ErrSlotNotFound
	}

	slot.CurrentBookingID = nil
	slot.IsAvailable = slot.ComputeAvailability()
	slot.UpdatedAt = r.store.now()

	r.store.putSlot(ctx, slot)
	return nil
}

// UpdateStatus меняет статус обслуживания и активность слота с пересчетом доступности
func (r *SlotRepository) UpdateStatus(ctx context.Context, slotID uuid.UUID, status domain.MaintenanceStatus, active bool) (*domain.ParkingSlot, error) {
	slot, ok := r.store.getSlot(ctx, slotID)
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}

	slot.MaintenanceStatus = status
	slot.IsActive = active
	slot.IsAvailable = slot.ComputeAvailability()
	slot.UpdatedAt = r.store.now()

	r.store.putSlot(ctx, slot)
	return slot.Clone(), nil
}

// Delete удаляет слот, если за ним не закреплено бронирование
func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	slot, ok := r.store.getSlot(ctx, id)
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if slot.CurrentBookingID != nil {
		return slotRepo.ErrSlotOccupied
	}

	r.store.deleteSlot(ctx, id)
	return nil
}
