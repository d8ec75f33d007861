package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gopkg.in/guregu/null.v4"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const table = "bookings"

// codeExclusionViolation нарушение EXCLUDE-ограничения на пересечение активных окон слота
const codeExclusionViolation = "23P01"

var columns = []string{
	"id",
	"user_id",
	"slot_id",
	"vehicle_number",
	"vehicle_type",
	"location",
	"start_time",
	"end_time",
	"duration_hours",
	"status",
	"total_amount",
	"check_in_time",
	"check_out_time",
	"extension_history",
	"cancellation_reason",
	"cancelled_at",
	"cancelled_by",
	"created_at",
	"updated_at",
}

// extensionRecord формат хранения продления в jsonb
type extensionRecord struct {
	OriginalEndTime time.Time `json:"original_end_time"`
	NewEndTime      time.Time `json:"new_end_time"`
	AddedHours      int       `json:"added_hours"`
	AddedAmount     float64   `json:"added_amount"`
	ExtendedAt      time.Time `json:"extended_at"`
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// id, created_at и updated_at заполняет БД
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	history, err := encodeHistory(booking.ExtensionHistory)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncodeHistory, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"slot_id",
			"vehicle_number",
			"vehicle_type",
			"location",
			"start_time",
			"end_time",
			"duration_hours",
			"status",
			"total_amount",
			"check_in_time",
			"check_out_time",
			"extension_history",
			"cancellation_reason",
			"cancelled_at",
			"cancelled_by",
		).
		Values(
			booking.UserID,
			booking.SlotID,
			booking.Vehicle.Number,
			booking.Vehicle.Type,
			booking.Location,
			booking.StartTime,
			booking.EndTime,
			booking.DurationHours,
			booking.Status,
			booking.TotalAmount,
			null.TimeFromPtr(booking.CheckInTime),
			null.TimeFromPtr(booking.CheckOutTime),
			history,
			null.StringFromPtr(booking.CancellationReason),
			null.TimeFromPtr(booking.CancelledAt),
			null.IntFromPtr(booking.CancelledBy),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == codeExclusionViolation {
			return nil, fmt.Errorf("%w: slot %s", ErrBookingOverlap, booking.SlotID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// Update сохраняет изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	history, err := encodeHistory(booking.ExtensionHistory)
	if err != nil {
		return fmt.Errorf("%w: Update: %v", ErrEncodeHistory, err)
	}

	query, args, err := psqlbuilder.Update(table).
		Set("end_time", booking.EndTime).
		Set("duration_hours", booking.DurationHours).
		Set("status", booking.Status).
		Set("total_amount", booking.TotalAmount).
		Set("check_in_time", null.TimeFromPtr(booking.CheckInTime)).
		Set("check_out_time", null.TimeFromPtr(booking.CheckOutTime)).
		Set("extension_history", history).
		Set("cancellation_reason", null.StringFromPtr(booking.CancellationReason)).
		Set("cancelled_at", null.TimeFromPtr(booking.CancelledAt)).
		Set("cancelled_by", null.IntFromPtr(booking.CancelledBy)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == codeExclusionViolation {
			return fmt.Errorf("%w: slot %s", ErrBookingOverlap, booking.SlotID)
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// GetActiveBySlot получает активные бронирования слота, отсортированные по времени начала
func (r *Repository) GetActiveBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Booking, error) {
	return r.list(ctx, "GetActiveBySlot", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"slot_id": slotID, "status": domain.StatusActive}).
		OrderBy("start_time ASC"))
}

// FindActiveOverlapping получает активные бронирования слота, пересекающиеся с окном [start, end).
// excludeID исключает само бронирование при проверке продления
func (r *Repository) FindActiveOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"slot_id": slotID, "status": domain.StatusActive}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	return r.list(ctx, "FindActiveOverlapping", builder)
}

// CountActiveByUser считает активные бронирования пользователя, которые еще не закончились к moment
func (r *Repository) CountActiveByUser(ctx context.Context, userID int64, moment time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"user_id": userID, "status": domain.StatusActive}).
		Where(squirrel.GtOrEq{"end_time": moment}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUser - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUser - execute query: %w", ErrExecQuery, err)
	}

	return count, nil
}

// GetBusySlotIDs возвращает слоты, у которых есть активное бронирование, пересекающееся с [start, end)
func (r *Repository) GetBusySlotIDs(ctx context.Context, start, end time.Time) ([]uuid.UUID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT slot_id").
		From(table).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusySlotIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusySlotIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetBusySlotIDs - scan slot_id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBusySlotIDs - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// ListOverdue получает активные бронирования, окно которых закончилось к now
func (r *Repository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	return r.list(ctx, "ListOverdue", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.LtOrEq{"end_time": now}).
		OrderBy("end_time ASC"))
}

// List получает бронирования по фильтру, сначала новые
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(columns...).From(table)

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.SlotID != nil {
		builder = builder.Where(squirrel.Eq{"slot_id": *filter.SlotID})
	}
	if filter.Location != nil {
		builder = builder.Where(squirrel.Eq{"location": *filter.Location})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_time": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		builder = builder.Where(squirrel.Lt{"start_time": *filter.StartTo})
	}

	return r.list(ctx, "List", builder.OrderBy("start_time DESC"))
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking            domain.Booking
		checkIn, checkOut  null.Time
		cancelledAt        null.Time
		cancellationReason null.String
		cancelledBy        null.Int
		history            []byte
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SlotID,
		&booking.Vehicle.Number,
		&booking.Vehicle.Type,
		&booking.Location,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationHours,
		&booking.Status,
		&booking.TotalAmount,
		&checkIn,
		&checkOut,
		&history,
		&cancellationReason,
		&cancelledAt,
		&cancelledBy,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CheckInTime = checkIn.Ptr()
	booking.CheckOutTime = checkOut.Ptr()
	booking.CancelledAt = cancelledAt.Ptr()
	booking.CancellationReason = cancellationReason.Ptr()
	booking.CancelledBy = cancelledBy.Ptr()

	booking.ExtensionHistory, err = decodeHistory(history)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func encodeHistory(history []domain.Extension) ([]byte, error) {
	records := make([]extensionRecord, 0, len(history))
	for _, e := range history {
		records = append(records, extensionRecord{
			OriginalEndTime: e.OriginalEndTime,
			NewEndTime:      e.NewEndTime,
			AddedHours:      e.AddedHours,
			AddedAmount:     e.AddedAmount,
			ExtendedAt:      e.ExtendedAt,
		})
	}
	return json.Marshal(records)
}

func decodeHistory(data []byte) ([]domain.Extension, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var records []extensionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode extension history: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	history := make([]domain.Extension, 0, len(records))
	for _, r := range records {
		history = append(history, domain.Extension{
			OriginalEndTime: r.OriginalEndTime,
			NewEndTime:      r.NewEndTime,
			AddedHours:      r.AddedHours,
			AddedAmount:     r.AddedAmount,
			ExtendedAt:      r.ExtendedAt,
		})
	}
	return history, nil
}
