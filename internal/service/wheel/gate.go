package wheel

import (
	"context"
	"errors"
	"sync"
	"time"

	"fortune_wheel/internal/service"
)

var errGateClosed = errors.New("wheel: gate closed")

type pendingSpin struct {
	spinID string
	timer  *time.Timer
	cancel context.CancelFunc
	// stopped раскрытие отменено, слот освобождает тот, кто вызвал Stop
	stopped bool
}

// Gate пропускает не более одного вращения на игрока.
// Результат раскрывается через фиксированную задержку (длительность анимации),
// после чего игрок снова может крутить колесо
type Gate struct {
	mtx     sync.Mutex
	pending map[string]*pendingSpin
	closed  bool
}

func NewGate() *Gate {
	return &Gate{
		pending: make(map[string]*pendingSpin),
	}
}

// Acquire занимает слот игрока. Слот держится до раскрытия результата или Cancel
func (g *Gate) Acquire(playerID string) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if g.closed {
		return errGateClosed
	}
	if _, ok := g.pending[playerID]; ok {
		return service.ErrSpinInProgress
	}

	g.pending[playerID] = &pendingSpin{cancel: func() {}}

	return nil
}

// Schedule через delay вызывает reveal для вращения spinID в занятом слоте.
// Контекст reveal отменяется при Stop/Cancel/Close
func (g *Gate) Schedule(playerID, spinID string, delay time.Duration, reveal func(ctx context.Context)) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if g.closed {
		return errGateClosed
	}
	p, ok := g.pending[playerID]
	if !ok || p.timer != nil || p.stopped {
		return service.ErrNoPendingSpin
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.spinID = spinID
	p.cancel = cancel
	p.timer = time.AfterFunc(delay, func() {
		// Слот освобождается только после применения результата
		defer g.release(playerID, p)

		if ctx.Err() != nil {
			return
		}
		reveal(ctx)
	})

	return nil
}

// Begin занимает слот и сразу планирует раскрытие
func (g *Gate) Begin(playerID, spinID string, delay time.Duration, reveal func(ctx context.Context)) error {
	if err := g.Acquire(playerID); err != nil {
		return err
	}
	return g.Schedule(playerID, spinID, delay, reveal)
}

// Stop отменяет запланированное раскрытие, но слот остается занятым до Release.
// Возвращает ID вращения, раскрытие которого отменено
func (g *Gate) Stop(playerID string) (string, bool) {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	p, ok := g.pending[playerID]
	if !ok || p.timer == nil || p.stopped {
		return "", false
	}
	p.stopped = true
	p.stop()
	return p.spinID, true
}

// Release освобождает слот, остановленный через Stop
func (g *Gate) Release(playerID string) {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if p, ok := g.pending[playerID]; ok && p.stopped {
		delete(g.pending, playerID)
	}
}

// Cancel отбрасывает ожидающее раскрытие и сразу освобождает слот.
// Возвращает false, если ждать было нечего
func (g *Gate) Cancel(playerID string) bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	p, ok := g.pending[playerID]
	if !ok {
		return false
	}
	p.stop()
	delete(g.pending, playerID)
	return true
}

func (g *Gate) Pending(playerID string) bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	_, ok := g.pending[playerID]
	return ok
}

// Close отменяет все ожидающие раскрытия и больше не принимает вращения
func (g *Gate) Close() {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	g.closed = true
	for id, p := range g.pending {
		p.stop()
		delete(g.pending, id)
	}
}

func (g *Gate) release(playerID string, p *pendingSpin) {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	p.cancel()
	// Слот мог быть отменен и занят новым вращением. Остановленный слот освобождает Release
	if cur, ok := g.pending[playerID]; ok && cur == p && !p.stopped {
		delete(g.pending, playerID)
	}
}

func (p *pendingSpin) stop() {
	p.cancel()
	if p.timer != nil {
		p.timer.Stop()
	}
}
