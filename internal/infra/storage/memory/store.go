package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ErrLockTimeout возвращается, когда блокировку слота не удалось получить до истечения контекста
var ErrLockTimeout = errors.New("memory.store: slot lock timeout")

// Store хранилище слотов и бронирований в памяти.
// Запись внутри транзакции буферизуется и применяется атомарно при коммите.
// Изменения одного слота сериализуются блокировкой слота, которую берет GetByIDForUpdate
type Store struct {
	mu       sync.RWMutex
	slots    map[uuid.UUID]*domain.ParkingSlot
	bookings map[uuid.UUID]*domain.Booking

	locksMu   sync.Mutex
	slotLocks map[uuid.UUID]chan struct{}

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:     make(map[uuid.UUID]*domain.ParkingSlot),
		bookings:  make(map[uuid.UUID]*domain.Booking),
		slotLocks: make(map[uuid.UUID]chan struct{}),
		now:       time.Now,
	}
}

// Slots возвращает репозиторий слотов поверх хранилища
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Bookings возвращает репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

func (s *Store) slotLock(id uuid.UUID) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.slotLocks[id]
	if !ok {
		lock = make(chan struct{}, 1)
		s.slotLocks[id] = lock
	}
	return lock
}

// lockSlot берет блокировку слота для транзакции; повторный вызов в той же транзакции ничего не делает
func (s *Store) lockSlot(ctx context.Context, t *tx, id uuid.UUID) error {
	if _, held := t.held[id]; held {
		return nil
	}

	lock := s.slotLock(id)
	select {
	case lock <- struct{}{}:
		t.held[id] = lock
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: slot %s: %w", ErrLockTimeout, id, ctx.Err())
	}
}

// getSlot читает слот с учетом буфера транзакции
func (s *Store) getSlot(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, bool) {
	if t := txFrom(ctx); t != nil {
		if _, deleted := t.deletedSlots[id]; deleted {
			return nil, false
		}
		if staged, ok := t.slots[id]; ok {
			return staged.Clone(), true
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[id]
	return slot.Clone(), ok
}

// putSlot пишет слот в буфер транзакции или сразу в хранилище
func (s *Store) putSlot(ctx context.Context, slot *domain.ParkingSlot) {
	slot = slot.Clone()
	if t := txFrom(ctx); t != nil {
		t.slots[slot.ID] = slot
		delete(t.deletedSlots, slot.ID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot.ID] = slot
}

func (s *Store) deleteSlot(ctx context.Context, id uuid.UUID) {
	if t := txFrom(ctx); t != nil {
		delete(t.slots, id)
		t.deletedSlots[id] = struct{}{}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, id)
}

// allSlots возвращает снимок всех слотов с учетом буфера транзакции
func (s *Store) allSlots(ctx context.Context) []*domain.ParkingSlot {
	t := txFrom(ctx)

	s.mu.RLock()
	merged := make(map[uuid.UUID]*domain.ParkingSlot, len(s.slots))
	for id, slot := range s.slots {
		merged[id] = slot
	}
	s.mu.RUnlock()

	if t != nil {
		for id, slot := range t.slots {
			merged[id] = slot
		}
		for id := range t.deletedSlots {
			delete(merged, id)
		}
	}

	out := make([]*domain.ParkingSlot, 0, len(merged))
	for _, slot := range merged {
		out = append(out, slot.Clone())
	}
	return out
}

func (s *Store) getBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, bool) {
	if t := txFrom(ctx); t != nil {
		if staged, ok := t.bookings[id]; ok {
			return staged.Clone(), true
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	return booking.Clone(), ok
}

func (s *Store) putBooking(ctx context.Context, booking *domain.Booking) {
	booking = booking.Clone()
	if t := txFrom(ctx); t != nil {
		t.bookings[booking.ID] = booking
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.ID] = booking
}

// allBookings возвращает снимок всех бронирований с учетом буфера транзакции
func (s *Store) allBookings(ctx context.Context) []*domain.Booking {
	t := txFrom(ctx)

	s.mu.RLock()
	merged := make(map[uuid.UUID]*domain.Booking, len(s.bookings))
	for id, booking := range s.bookings {
		merged[id] = booking
	}
	s.mu.RUnlock()

	if t != nil {
		for id, booking := range t.bookings {
			merged[id] = booking
		}
	}

	out := make([]*domain.Booking, 0, len(merged))
	for _, booking := range merged {
		out = append(out, booking.Clone())
	}
	return out
}

// commit применяет буфер транзакции одним шагом
func (s *Store) commit(t *tx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, slot := range t.slots {
		s.slots[id] = slot
	}
	for id := range t.deletedSlots {
		delete(s.slots, id)
	}
	for id, booking := range t.bookings {
		s.bookings[id] = booking
	}
}
