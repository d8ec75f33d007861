package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Storage     StorageConfig     `toml:"storage"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
	Redis       RedisConfig       `toml:"redis"`
	Notifier    NotifierConfig    `toml:"notifier"`
	Booking     BookingConfig     `toml:"booking"`
	Sweep       SweepConfig       `toml:"sweep"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MigrationsPath  string `toml:"migrations_path"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig выбор хранилища и параметры транзакций
type StorageConfig struct {
	Driver             string `toml:"driver"`
	OperationTimeoutMs int    `toml:"operation_timeout_ms"`
	MaxTxRetries       int    `toml:"max_tx_retries"`
	SeedSlots          int    `toml:"seed_slots"`
}

// OperationTimeout таймаут одной транзакции
func (c StorageConfig) OperationTimeout() time.Duration {
	return time.Duration(c.OperationTimeoutMs) * time.Millisecond
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// UserServiceConfig параметры клиента UserService
type UserServiceConfig struct {
	URL                     string `toml:"url"`
	Timeout                 int    `toml:"timeout"` // секунды
	BreakerMaxFailures      uint32 `toml:"breaker_max_failures"`
	BreakerOpenTimeout      int    `toml:"breaker_open_timeout"` // секунды
	BreakerHalfOpenRequests uint32 `toml:"breaker_half_open_requests"`
}

// RedisConfig параметры публикации событий в Redis
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

// NotifierConfig параметры фоновой рассылки событий
type NotifierConfig struct {
	QueueSize        int `toml:"queue_size"`
	PublishTimeoutMs int `toml:"publish_timeout_ms"`
}

// BookingConfig переопределение правил бронирования
type BookingConfig struct {
	MaxAdvanceDays      int `toml:"max_advance_days"`
	MaxDurationHours    int `toml:"max_duration_hours"`
	MaxActiveBookings   int `toml:"max_active_bookings"`
	CancelCutoffMinutes int `toml:"cancel_cutoff_minutes"`
	CheckInGraceMinutes int `toml:"check_in_grace_minutes"`
	MinExtensionHours   int `toml:"min_extension_hours"`
	MaxExtensionHours   int `toml:"max_extension_hours"`
}

// Policy собирает правила бронирования из конфигурации
func (c BookingConfig) Policy() domain.BookingPolicy {
	return domain.BookingPolicy{
		MaxAdvance:        time.Duration(c.MaxAdvanceDays) * 24 * time.Hour,
		MaxDuration:       time.Duration(c.MaxDurationHours) * time.Hour,
		MaxActiveBookings: c.MaxActiveBookings,
		CancelCutoff:      time.Duration(c.CancelCutoffMinutes) * time.Minute,
		CheckInGrace:      time.Duration(c.CheckInGraceMinutes) * time.Minute,
		MinExtensionHours: c.MinExtensionHours,
		MaxExtensionHours: c.MaxExtensionHours,
	}
}

// SweepConfig параметры фонового закрытия просроченных бронирований
type SweepConfig struct {
	Enabled          bool   `toml:"enabled"`
	IntervalSeconds  int    `toml:"interval_seconds"`
	UnattendedStatus string `toml:"unattended_status"`
}

// Load читает конфигурацию из TOML файла и подставляет значения по умолчанию
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "parking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrationsPath:  "migrations",
		},
		Storage: StorageConfig{
			Driver:             DriverPostgres,
			OperationTimeoutMs: 5000,
			MaxTxRetries:       3,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "parking-service",
		},
		UserService: UserServiceConfig{
			URL:                     "http://localhost:8081",
			Timeout:                 5,
			BreakerMaxFailures:      5,
			BreakerOpenTimeout:      30,
			BreakerHalfOpenRequests: 1,
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Channel: "parking.events",
		},
		Notifier: NotifierConfig{
			QueueSize:        256,
			PublishTimeoutMs: 2000,
		},
		Booking: BookingConfig{
			MaxAdvanceDays:      domain.DefaultMaxAdvanceDays,
			MaxDurationHours:    domain.DefaultMaxDurationHours,
			MaxActiveBookings:   domain.DefaultMaxActiveBookings,
			CancelCutoffMinutes: domain.DefaultCancelCutoffMinutes,
			CheckInGraceMinutes: domain.DefaultCheckInGraceMinutes,
			MinExtensionHours:   domain.DefaultMinExtensionHours,
			MaxExtensionHours:   domain.DefaultMaxExtensionHours,
		},
		Sweep: SweepConfig{
			Enabled:          true,
			IntervalSeconds:  60,
			UnattendedStatus: string(domain.StatusNoShow),
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}

	switch c.Storage.Driver {
	case DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Storage.Driver))
	}
	if c.Storage.OperationTimeoutMs <= 0 {
		errs = append(errs, errors.New("storage.operation_timeout_ms must be positive"))
	}
	if c.Storage.MaxTxRetries < 0 {
		errs = append(errs, errors.New("storage.max_tx_retries must not be negative"))
	}
	if c.Storage.SeedSlots < 0 {
		errs = append(errs, errors.New("storage.seed_slots must not be negative"))
	}

	if c.UserService.URL == "" {
		errs = append(errs, errors.New("user_service.url is required"))
	}
	if c.UserService.Timeout <= 0 || c.UserService.BreakerOpenTimeout < 0 {
		errs = append(errs, errors.New("user_service timeouts must be positive"))
	}

	if c.Redis.Enabled && (c.Redis.Addr == "" || c.Redis.Channel == "") {
		errs = append(errs, errors.New("redis.addr and redis.channel are required when redis is enabled"))
	}
	if c.Notifier.PublishTimeoutMs <= 0 {
		errs = append(errs, errors.New("notifier.publish_timeout_ms must be positive"))
	}

	b := c.Booking
	if b.MaxAdvanceDays <= 0 || b.MaxDurationHours <= 0 || b.MaxActiveBookings <= 0 {
		errs = append(errs, errors.New("booking limits must be positive"))
	}
	if b.CancelCutoffMinutes < 0 || b.CheckInGraceMinutes < 0 {
		errs = append(errs, errors.New("booking cut-off and grace must not be negative"))
	}
	if b.MinExtensionHours <= 0 || b.MaxExtensionHours < b.MinExtensionHours {
		errs = append(errs, fmt.Errorf("booking extension range %d..%d is invalid", b.MinExtensionHours, b.MaxExtensionHours))
	}

	if c.Sweep.IntervalSeconds <= 0 {
		errs = append(errs, errors.New("sweep.interval_seconds must be positive"))
	}
	switch domain.BookingStatus(c.Sweep.UnattendedStatus) {
	case domain.StatusNoShow, domain.StatusExpired:
	default:
		errs = append(errs, fmt.Errorf("sweep.unattended_status must be %q or %q, got %q",
			domain.StatusNoShow, domain.StatusExpired, c.Sweep.UnattendedStatus))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
