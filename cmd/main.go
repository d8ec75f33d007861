package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_out"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	createSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_slot"
	extendBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/extend_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_slot"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_bookings"
	listSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_slots"
	runSweepHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/run_sweep"
	updateSlotStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_slot_status"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	userServiceClient "github.com/m04kA/SMC-ParkingService/internal/integrations/userservice"
	allocationService "github.com/m04kA/SMC-ParkingService/internal/service/allocation"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	slotsService "github.com/m04kA/SMC-ParkingService/internal/service/slots"
	cancelBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/cancel_booking"
	checkInUC "github.com/m04kA/SMC-ParkingService/internal/usecase/check_in"
	checkOutUC "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	extendBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/extend_booking"
	findAvailableSlotsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/find_available_slots"
	sweepExpiredUC "github.com/m04kA/SMC-ParkingService/internal/usecase/sweep_expired"
	updateSlotStatusUC "github.com/m04kA/SMC-ParkingService/internal/usecase/update_slot_status"
	"github.com/m04kA/SMC-ParkingService/internal/worker/expiry"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.toml", "path to TOML config")
	runMigrations := pflag.Bool("migrate", false, "apply SQL migrations before start (postgres only)")
	pflag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены).
	// Интерфейсы остаются nil при выключенных метриках, typed nil сюда попадать не должен
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Поднимаем хранилище
	store, err := openStorage(cfg, log, dbRecorder, stopMetricsCh, *runMigrations)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		userServiceClient.BreakerSettings{
			MaxFailures:      cfg.UserService.BreakerMaxFailures,
			OpenTimeout:      time.Duration(cfg.UserService.BreakerOpenTimeout) * time.Second,
			HalfOpenRequests: cfg.UserService.BreakerHalfOpenRequests,
		},
		log,
	)
	log.Info("UserService client initialized (url=%s timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	// Получатели событий
	sinks := []notifier.Sink{notifier.NewLogSink(log)}
	if metricsCollector != nil {
		sinks = append(sinks, notifier.NewMetricsSink(metricsCollector))
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis at %s is not reachable, publishing will fail until it is up: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		sinks = append(sinks, notifier.NewRedisPublisher(redisClient, cfg.Redis.Channel))
		log.Info("Redis event publishing enabled (addr=%s channel=%s)", cfg.Redis.Addr, cfg.Redis.Channel)
	}

	dispatcher := notifier.NewDispatcher(
		time.Duration(cfg.Notifier.PublishTimeoutMs)*time.Millisecond,
		cfg.Notifier.QueueSize,
		log,
		sinks...,
	)

	// Инициализируем сервисы
	policy := cfg.Booking.Policy()
	allocator := allocationService.NewService(store.bookings, store.slots)
	bookingSvc := bookingsService.NewService(store.bookings, log)
	slotSvc := slotsService.NewService(store.slots, log)

	if cfg.Storage.SeedSlots > 0 {
		created, err := slotSvc.Seed(context.Background(), cfg.Storage.SeedSlots)
		if err != nil {
			log.Fatal("Failed to seed slots: %v", err)
		}
		log.Info("Seeded %d parking slots", created)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.slots,
		allocator,
		userClient,
		dispatcher,
		store.tx,
		policy,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(store.bookings, allocator, dispatcher, store.tx, policy, log)
	extendBookingUseCase := extendBookingUC.NewUseCase(store.bookings, allocator, dispatcher, store.tx, policy, log)
	checkInUseCase := checkInUC.NewUseCase(store.bookings, allocator, dispatcher, store.tx, policy, log)
	checkOutUseCase := checkOutUC.NewUseCase(store.bookings, allocator, dispatcher, store.tx, log)
	findAvailableSlotsUseCase := findAvailableSlotsUC.NewUseCase(store.slots, store.bookings, store.tx, log)
	updateSlotStatusUseCase := updateSlotStatusUC.NewUseCase(store.slots, store.bookings, allocator, dispatcher, store.tx, log)

	sweepExpiredUseCase, err := sweepExpiredUC.NewUseCase(
		store.bookings,
		allocator,
		dispatcher,
		store.tx,
		domain.BookingStatus(cfg.Sweep.UnattendedStatus),
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize sweep: %v", err)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	extendBooking := extendBookingHandler.NewHandler(extendBookingUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	checkOut := checkOutHandler.NewHandler(checkOutUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(findAvailableSlotsUseCase, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	updateSlotStatus := updateSlotStatusHandler.NewHandler(updateSlotStatusUseCase, log)
	runSweep := runSweepHandler.NewHandler(sweepExpiredUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if metricsCollector != nil {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все маршруты требуют X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Слоты ---
	// Доступные слоты: до маршрута /slots/{slotId}, чтобы "available" не разбирался как ID
	api.HandleFunc("/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/extend", extendBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/checkin", checkIn.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/checkout", checkOut.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (роль admin)
	// ============================================================

	api.Handle("/slots/{slotId}/status",
		middleware.RequireAdmin(http.HandlerFunc(updateSlotStatus.Handle))).Methods(http.MethodPatch)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/sweep", runSweep.Handle).Methods(http.MethodPost)

	// Фоновое закрытие просроченных бронирований
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	var sweepWorker *expiry.Worker
	if cfg.Sweep.Enabled {
		sweepWorker = expiry.NewWorker(
			sweepExpiredUseCase,
			time.Duration(cfg.Sweep.IntervalSeconds)*time.Second,
			time.Duration(cfg.Sweep.IntervalSeconds)*time.Second,
			log,
		)
		sweepWorker.Start(workerCtx)
		log.Info("Expiry sweep started (interval=%ds, unattended=%s)", cfg.Sweep.IntervalSeconds, cfg.Sweep.UnattendedStatus)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновый проход
	if sweepWorker != nil {
		stopWorker()
		sweepWorker.Wait()
		log.Info("Expiry sweep stopped")
	}

	// Доставляем события, оставшиеся в очереди
	dispatcher.Close()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
