package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/migrations"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// bookingStore полный контракт хранилища бронирований, общий для PostgreSQL и памяти
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	GetActiveBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Booking, error)
	FindActiveOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Booking, error)
	CountActiveByUser(ctx context.Context, userID int64, moment time.Time) (int, error)
	GetBusySlotIDs(ctx context.Context, start, end time.Time) ([]uuid.UUID, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// slotStore полный контракт хранилища слотов
type slotStore interface {
	Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.ParkingSlot, error)
	Claim(ctx context.Context, slotID, bookingID uuid.UUID) error
	Release(ctx context.Context, slotID uuid.UUID) error
	UpdateStatus(ctx context.Context, slotID uuid.UUID, status domain.MaintenanceStatus, active bool) (*domain.ParkingSlot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// transactionManager менеджер транзакций, используемый use cases
type transactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	bookings bookingStore
	slots    slotStore
	tx       transactionManager
	close    func()
}

// openStorage поднимает выбранное в конфигурации хранилище
func openStorage(cfg *config.Config, log *logger.Logger, recorder dbmetrics.Recorder, stopMetricsCh <-chan struct{}, runMigrations bool) (*storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		store := memory.NewStore()
		log.Info("Using in-memory storage (operation timeout %s)", cfg.Storage.OperationTimeout())
		return &storage{
			bookings: store.Bookings(),
			slots:    store.Slots(),
			tx:       memory.NewTxManager(store, cfg.Storage.OperationTimeout()),
			close:    func() {},
		}, nil
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if runMigrations {
		version, err := migrations.Up(db, cfg.Database.MigrationsPath)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("Migrations applied from %s, schema version %d", cfg.Database.MigrationsPath, version)
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stopMetricsCh)

	return &storage{
		bookings: bookingRepo.NewRepository(wrappedDB),
		slots:    slotRepo.NewRepository(wrappedDB),
		tx:       txmanager.NewTransactionManager(wrappedDB, cfg.Storage.MaxTxRetries, cfg.Storage.OperationTimeout()),
		close: func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}
