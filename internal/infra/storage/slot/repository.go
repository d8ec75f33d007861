package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const table = "parking_slots"

const codeUniqueViolation = "23505"

var columns = []string{
	"id",
	"slot_number",
	"location",
	"vehicle_type",
	"reserved_for",
	"hourly_rate",
	"is_active",
	"maintenance_status",
	"current_booking_id",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий парковочных слотов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот. Слот создается свободным: current_booking_id = NULL
func (r *Repository) Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slot.CurrentBookingID = nil
	slot.IsAvailable = slot.ComputeAvailability()

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"slot_number",
			"location",
			"vehicle_type",
			"reserved_for",
			"hourly_rate",
			"is_active",
			"maintenance_status",
			"is_available",
		).
		Values(
			slot.SlotNumber,
			slot.Location,
			slot.VehicleType,
			slot.ReservedFor,
			slot.HourlyRate,
			slot.IsActive,
			slot.MaintenanceStatus,
			slot.IsAvailable,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrSlotNumberTaken, slot.SlotNumber)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error) {
	return r.get(ctx, "GetByID", id, false)
}

// GetByIDForUpdate получает слот по ID и, внутри транзакции, блокирует строку (FOR UPDATE).
// Все изменения бронирований слота сериализуются через эту блокировку
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error) {
	return r.get(ctx, "GetByIDForUpdate", id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, op string, id uuid.UUID, lock bool) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %w", ErrScanRow, op, err)
	}

	return slot, nil
}

// List получает слоты по фильтру, отсортированные по номеру
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.Location != nil {
		builder = builder.Where(squirrel.Eq{"location": *filter.Location})
	}
	if filter.VehicleType != nil {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"vehicle_type": *filter.VehicleType},
			squirrel.Eq{"vehicle_type": domain.VehicleAny},
		})
	}
	if filter.OnlyOperational {
		builder = builder.Where(squirrel.Eq{
			"is_active":          true,
			"maintenance_status": domain.MaintenanceOperational,
		})
	}

	query, args, err := builder.OrderBy("slot_number ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.ParkingSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan slot: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// Claim закрепляет слот за бронированием
func (r *Repository) Claim(ctx context.Context, slotID, bookingID uuid.UUID) error {
	return r.exec(ctx, "Claim", psqlbuilder.Update(table).
		Set("current_booking_id", bookingID).
		Set("is_available", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}))
}

// Release освобождает слот; доступность пересчитывается из is_active и maintenance_status
func (r *Repository) Release(ctx context.Context, slotID uuid.UUID) error {
	return r.exec(ctx, "Release", psqlbuilder.Update(table).
		Set("current_booking_id", nil).
		Set("is_available", squirrel.Expr("is_active AND maintenance_status = ?", domain.MaintenanceOperational)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}))
}

// UpdateStatus меняет статус обслуживания и активность слота с пересчетом доступности
func (r *Repository) UpdateStatus(ctx context.Context, slotID uuid.UUID, status domain.MaintenanceStatus, active bool) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	operational := status == domain.MaintenanceOperational

	query, args, err := psqlbuilder.Update(table).
		Set("maintenance_status", status).
		Set("is_active", active).
		Set("is_available", squirrel.Expr("current_booking_id IS NULL AND ?", active && operational)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return slot, nil
}

// Delete удаляет слот, если за ним не закреплено бронирование
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "current_booking_id": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Ничего не удалено: либо слота нет, либо он занят
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrSlotOccupied
}

func (r *Repository) exec(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.ParkingSlot, error) {
	var (
		slot    domain.ParkingSlot
		current uuid.NullUUID
	)

	err := row.Scan(
		&slot.ID,
		&slot.SlotNumber,
		&slot.Location,
		&slot.VehicleType,
		&slot.ReservedFor,
		&slot.HourlyRate,
		&slot.IsActive,
		&slot.MaintenanceStatus,
		&current,
		&slot.IsAvailable,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if current.Valid {
		id := current.UUID
		slot.CurrentBookingID = &id
	}

	return &slot, nil
}
