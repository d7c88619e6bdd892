package memory

import (
	"context"
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type txKey struct{}

var _ trm.Manager = (*TxManager)(nil)

// TxManager транзакции поверх Storage: выполняются по одной,
// при ошибке измененные ключи откатываются по журналу. Вложенный Do выполняется в той же транзакции
type TxManager struct {
	mtx     sync.Mutex
	storage *Storage
}

func NewTxManager(storage *Storage) *TxManager {
	return &TxManager{storage: storage}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	undo := newUndoLog()
	if err := fn(context.WithValue(ctx, txKey{}, undo)); err != nil {
		m.storage.rollback(undo)
		return err
	}
	return nil
}

func (m *TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
