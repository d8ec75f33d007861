package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

// BookingRepository репозиторий бронирований в памяти, повторяющий контракт PostgreSQL-репозитория
type BookingRepository struct {
	store *Store
}

// Create сохраняет новое бронирование и присваивает ему ID
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	now := r.store.now()
	booking.ID = uuid.New()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	r.store.putBooking(ctx, booking)
	return booking, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, ok := r.store.getBooking(ctx, id)
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

// Update сохраняет бронирование целиком
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	if _, ok := r.store.getBooking(ctx, booking.ID); !ok {
		return bookingRepo.ErrBookingNotFound
	}

	booking.UpdatedAt = r.store.now()
	r.store.putBooking(ctx, booking)
	return nil
}

// GetActiveBySlot получает активные бронирования слота, отсортированные по времени начала
func (r *BookingRepository) GetActiveBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Booking, error) {
	return r.filter(ctx, byStartAsc, func(b *domain.Booking) bool {
		return b.SlotID == slotID && b.IsActive()
	}), nil
}

// FindActiveOverlapping получает активные бронирования слота, пересекающиеся с [start, end)
func (r *BookingRepository) FindActiveOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Booking, error) {
	return r.filter(ctx, byStartAsc, func(b *domain.Booking) bool {
		if excludeID != nil && b.ID == *excludeID {
			return false
		}
		return b.SlotID == slotID && b.IsActive() && b.Overlaps(start, end)
	}), nil
}

// CountActiveByUser считает активные бронирования пользователя, которые еще не закончились к moment
func (r *BookingRepository) CountActiveByUser(ctx context.Context, userID int64, moment time.Time) (int, error) {
	return len(r.filter(ctx, nil, func(b *domain.Booking) bool {
		return b.UserID == userID && b.IsActive() && !b.EndTime.Before(moment)
	})), nil
}

// GetBusySlotIDs возвращает слоты с активным бронированием, пересекающимся с [start, end)
func (r *BookingRepository) GetBusySlotIDs(ctx context.Context, start, end time.Time) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, b := range r.store.allBookings(ctx) {
		if !b.IsActive() || !b.Overlaps(start, end) {
			continue
		}
		if _, ok := seen[b.SlotID]; ok {
			continue
		}
		seen[b.SlotID] = struct{}{}
		ids = append(ids, b.SlotID)
	}
	return ids, nil
}

// ListOverdue получает активные бронирования, окно которых закончилось к now
func (r *BookingRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	return r.filter(ctx, func(a, b *domain.Booking) bool {
		return a.EndTime.Before(b.EndTime)
	}, func(b *domain.Booking) bool {
		return b.IsActive() && !b.EndTime.After(now)
	}), nil
}

// List получает бронирования по фильтру, сначала новые
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	return r.filter(ctx, func(a, b *domain.Booking) bool {
		return a.StartTime.After(b.StartTime)
	}, filter.Matches), nil
}

func byStartAsc(a, b *domain.Booking) bool {
	return a.StartTime.Before(b.StartTime)
}

func (r *BookingRepository) filter(ctx context.Context, less func(a, b *domain.Booking) bool, keep func(*domain.Booking) bool) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range r.store.allBookings(ctx) {
		if keep(b) {
			out = append(out, b)
		}
	}

	if less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j])
		})
	}
	return out
}
