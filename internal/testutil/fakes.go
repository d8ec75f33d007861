package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Clock управляемые часы для тестов
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock создает часы, остановленные на now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set переставляет часы
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance сдвигает часы вперед
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Directory справочник пользователей в памяти
type Directory struct {
	mu       sync.Mutex
	roles    map[int64]domain.Role
	vehicles map[int64][]domain.Vehicle
	err      error
}

// NewDirectory создает пустой справочник
func NewDirectory() *Directory {
	return &Directory{
		roles:    make(map[int64]domain.Role),
		vehicles: make(map[int64][]domain.Vehicle),
	}
}

// AddUser регистрирует пользователя с ролью и автомобилями
func (d *Directory) AddUser(userID int64, role domain.Role, vehicles ...domain.Vehicle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[userID] = role
	d.vehicles[userID] = append(d.vehicles[userID], vehicles...)
}

// Fail заставляет все вызовы возвращать err (nil - вернуть нормальную работу)
func (d *Directory) Fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

func (d *Directory) GetRole(_ context.Context, userID int64) (domain.Role, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return "", d.err
	}
	role, ok := d.roles[userID]
	if !ok {
		return domain.RoleStudent, nil
	}
	return role, nil
}

func (d *Directory) GetRegisteredVehicles(_ context.Context, userID int64) ([]domain.Vehicle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	return append([]domain.Vehicle(nil), d.vehicles[userID]...), nil
}

// Notifier запоминает опубликованные события
type Notifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *Notifier) Notify(_ context.Context, event domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events возвращает копию опубликованных событий
func (n *Notifier) Events() []domain.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Event(nil), n.events...)
}

// Types возвращает типы опубликованных событий по порядку
func (n *Notifier) Types() []domain.EventType {
	events := n.Events()
	types := make([]domain.EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

// Logger логгер, который ничего не пишет
type Logger struct{}

func (Logger) Debug(string, ...interface{}) {}
func (Logger) Info(string, ...interface{}) {}
func (Logger) Warn(string, ...interface{}) {}
func (Logger) Error(string, ...interface{}) {}
