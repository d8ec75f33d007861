package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type txKey struct{}

// tx буфер изменений и удерживаемые блокировки слотов одной транзакции
type tx struct {
	slots        map[uuid.UUID]*domain.ParkingSlot
	deletedSlots map[uuid.UUID]struct{}
	bookings     map[uuid.UUID]*domain.Booking
	held         map[uuid.UUID]chan struct{}
}

func newTx() *tx {
	return &tx{
		slots:        make(map[uuid.UUID]*domain.ParkingSlot),
		deletedSlots: make(map[uuid.UUID]struct{}),
		bookings:     make(map[uuid.UUID]*domain.Booking),
		held:         make(map[uuid.UUID]chan struct{}),
	}
}

func txFrom(ctx context.Context) *tx {
	t, _ := ctx.Value(txKey{}).(*tx)
	return t
}

func (t *tx) unlockAll() {
	for id, lock := range t.held {
		<-lock
		delete(t.held, id)
	}
}

// TxManager менеджер транзакций хранилища в памяти
type TxManager struct {
	store   *Store
	timeout time.Duration
}

// NewTxManager создает менеджер транзакций. timeout ограничивает одну транзакцию, 0 - без лимита
func NewTxManager(store *Store, timeout time.Duration) *TxManager {
	return &TxManager{store: store, timeout: timeout}
}

// DoSerializable выполняет fn в транзакции: изменения буферизуются, при успехе применяются
// атомарно до снятия блокировок слотов, при ошибке отбрасываются.
// Вложенный вызов присоединяется к внешней транзакции
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	t := newTx()
	defer t.unlockAll()

	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}

	m.store.commit(t)
	return nil
}

// DoReadOnly выполняет fn без буфера: чтение идет из закоммиченного состояния
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	return fn(ctx)
}
